package quorumtest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/store/iavl"
)

// CommitKVStore opens an iavl store in a temporary directory, the
// backend quorumd runs on. Call cleanup to close and remove it.
func CommitKVStore(t testing.TB) (db quorum.CommitKVStore, cleanup func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "quorumtest")
	if err != nil {
		t.Fatalf("temp dir: %s", err)
	}
	kv, err := iavl.NewCommitStore(dir, "db")
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("commit store: %s", err)
	}
	return kv, func() {
		kv.Close()
		os.RemoveAll(dir)
	}
}
