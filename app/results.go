package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// ResultSet holds the keys or the values of a query response. Keys and
// values are returned as two sets of the same length.
type ResultSet struct {
	Results [][]byte
}

// Marshal serializes the set with go-amino.
func (r *ResultSet) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(r)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal result set: %s", err)
	}
	return raw, nil
}

// Unmarshal reads a set written by Marshal. An empty set is written as no
// bytes at all.
func (r *ResultSet) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		r.Results = nil
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, r); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal result set: %s", err)
	}
	return nil
}

// ResultsFromKeys returns the keys of models, in order.
func ResultsFromKeys(models []quorum.Model) *ResultSet {
	return collect(models, func(m quorum.Model) []byte { return m.Key })
}

// ResultsFromValues returns the values of models, in order.
func ResultsFromValues(models []quorum.Model) *ResultSet {
	return collect(models, func(m quorum.Model) []byte { return m.Value })
}

func collect(models []quorum.Model, field func(quorum.Model) []byte) *ResultSet {
	set := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		set.Results[i] = field(m)
	}
	return set
}

// JoinResults pairs the keys and values of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]quorum.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "mismatched result set size: %d keys, %d values", len(keys.Results), len(values.Results))
	}
	models := make([]quorum.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = quorum.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of a query response into
// dst. An empty response leaves dst untouched.
func UnmarshalOneResult(raw []byte, dst orm.Model) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return orm.Unmarshal(set.Results[0], dst)
}
