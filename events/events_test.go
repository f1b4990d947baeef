package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(_ context.Context, event Event) error {
	r.got = append(r.got, event)
	return r.err
}

func TestMultiDeliversToEveryPublisher(t *testing.T) {
	failing := &recorder{err: errors.New("broker down")}
	ok := &recorder{}
	multi := Multi{failing, nil, ok, Nop{}}

	event := New(MatchCreated, 3, 1, map[string]string{"opponent": "Eagles"})
	err := multi.Publish(context.Background(), event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	require.Len(t, ok.got, 1)
	assert.Equal(t, MatchCreated, ok.got[0].Type)
	assert.Equal(t, 3, ok.got[0].EntityID)
	assert.Len(t, failing.got, 1)
}

func TestMultiEmpty(t *testing.T) {
	assert.NoError(t, Multi{}.Publish(context.Background(), New(TrainingDeleted, 1, 1, nil)))
}
