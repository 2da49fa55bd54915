package dialogue

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	chatentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/entity"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
)

func TestDeliverInOrderAndLog(t *testing.T) {
	gw := &recordingGateway{}
	chats := &memChats{}
	a := NewAssembler(gw, chats, zap.NewNop().Sugar())

	list := message.InteractiveList{Header: "Menu"}
	d := Decision{Actions: []Action{menu(list), {Text: "after menu"}}, LogTurn: true}
	require.NoError(t, a.Deliver(context.Background(), phone, "hello", d))

	want := []sent{{To: phone, Menu: &list}, {To: phone, Text: "after menu"}}
	if diff := cmp.Diff(want, gw.sent); diff != "" {
		t.Errorf("sent mismatch (-want +got):\n%s", diff)
	}

	type logged struct {
		Message string
		Role    chatentity.Role
	}
	var got []logged
	for _, e := range chats.entries {
		got = append(got, logged{e.Message, e.Role})
	}
	assert.Equal(t, []logged{{"hello", chatentity.RoleUser}, {"after menu", chatentity.RoleBot}}, got)
}

func TestDeliverWithoutLog(t *testing.T) {
	gw := &recordingGateway{}
	chats := &memChats{}
	a := NewAssembler(gw, chats, zap.NewNop().Sugar())

	require.NoError(t, a.Deliver(context.Background(), phone, "/help", reply(HelpText)))
	assert.Len(t, gw.sent, 1)
	assert.Zero(t, chats.count())
}

func TestDeliverStopsAtFailure(t *testing.T) {
	gw := &recordingGateway{failAt: 1, err: errors.New("graph down")}
	chats := &memChats{}
	a := NewAssembler(gw, chats, zap.NewNop().Sugar())

	err := a.Deliver(context.Background(), phone, "hi", Decision{Actions: textActions("one", "two"), LogTurn: true})
	assert.ErrorContains(t, err, "graph down")
	assert.Len(t, gw.sent, 1)
	assert.Zero(t, chats.count())
}
