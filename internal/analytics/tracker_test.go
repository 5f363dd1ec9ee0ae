package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Track(EventAddListItem, Payload{"listId": 1, "name": "Milk"})
	r.Track(EventUpdateList, Payload{"listId": 1})

	events := r.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventAddListItem, events[0].Name)
	assert.Equal(t, "Milk", events[0].Payload["name"])
	assert.NotEmpty(t, events[0].ID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.Equal(t, []string{EventAddListItem, EventUpdateList}, r.Names())
}

func TestMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	Multi{a, b, Nop{}}.Track(EventMakePurchase, nil)

	assert.Equal(t, []string{EventMakePurchase}, a.Names())
	assert.Equal(t, []string{EventMakePurchase}, b.Names())
}

func TestOrNop(t *testing.T) {
	assert.IsType(t, Nop{}, OrNop(nil))

	r := &Recorder{}
	assert.Same(t, r, OrNop(r))
}
