package hub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listup/listup-server/internal/room"
)

func TestHub_Ensure_Get_SamePointer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, zap.NewNop(), room.Options{}, 0)

	r1 := h.Ensure("ZED123")
	require.NotNil(t, r1)

	r2 := h.Get("ZED123")
	assert.Same(t, r1, r2)

	r3 := h.Ensure("ZED123")
	assert.Same(t, r1, r3)
}

func TestHub_Get_UnknownRoomIsNil(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, zap.NewNop(), room.Options{}, 0)

	assert.Nil(t, h.Get("NOPE"))
}

func TestHub_RemoveRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx, zap.NewNop(), room.Options{}, 0)

	h.Ensure("ABCDEF")
	h.Inbox() <- RemoveRoom{Code: "ABCDEF"}

	assert.Nil(t, h.Get("ABCDEF"))
}
