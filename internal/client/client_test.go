package client

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctioneer/internal/protocol"
)

// scriptedServer runs the server side of a net.Pipe: send some lines, then
// optionally expect one line back from the client.
type scriptedStep struct {
	send   []string
	expect string
}

func runScript(t *testing.T, conn net.Conn, steps []scriptedStep) {
	t.Helper()

	reader := bufio.NewReader(conn)
	for _, step := range steps {
		for _, line := range step.send {
			_, err := conn.Write([]byte(line + "\n"))
			require.NoError(t, err)
		}
		if step.expect != "" {
			got, err := reader.ReadString('\n')
			require.NoError(t, err)
			require.Equal(t, step.expect, strings.TrimRight(got, "\n"))
		}
	}
	conn.Close()
}

func runClient(t *testing.T, conn net.Conn, stdin string) (string, error) {
	t.Helper()

	var out strings.Builder
	errCh := make(chan error, 1)
	go func() {
		errCh <- New(conn, strings.NewReader(stdin), &out).Run()
	}()

	select {
	case err := <-errCh:
		return out.String(), err
	case <-time.After(2 * time.Second):
		t.Fatal("client did not finish")
		return "", nil
	}
}

func TestClientAnswersSellerPrompt(t *testing.T) {
	clientSide, serverSide := net.Pipe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		runScript(t, serverSide, []scriptedStep{
			{send: []string{protocol.MsgConnected, protocol.MsgRoleSeller, protocol.MsgSubmitRequest}, expect: "1 100 2 Vase"},
			{send: []string{protocol.MsgRequestOK, protocol.ItemSold("Vase", 150)}},
		})
	}()

	out, err := runClient(t, clientSide, "1 100 2 Vase\n")
	require.NoError(t, err)
	<-done

	assert.Contains(t, out, protocol.MsgRoleSeller)
	assert.Contains(t, out, protocol.ItemSold("Vase", 150))
}

func TestClientStopsOnGoodbye(t *testing.T) {
	clientSide, serverSide := net.Pipe()

	go runScript(t, serverSide, []scriptedStep{
		{send: []string{protocol.MsgConnected, protocol.MsgRoleBuyer, protocol.MsgBiddingStarted}, expect: "150"},
		{send: []string{protocol.MsgBidReceived, protocol.BuyerWon("Vase", 150), protocol.MsgGoodbye}},
	})

	out, err := runClient(t, clientSide, "150\n")
	require.NoError(t, err)

	assert.Contains(t, out, protocol.BuyerWon("Vase", 150))
	assert.Contains(t, out, protocol.MsgGoodbye)
}

func TestClientStopsOnBusyServer(t *testing.T) {
	clientSide, serverSide := net.Pipe()

	go runScript(t, serverSide, []scriptedStep{
		{send: []string{protocol.MsgServerBusy}},
	})

	out, err := runClient(t, clientSide, "")
	require.NoError(t, err)

	assert.Contains(t, out, protocol.MsgServerBusy)
}

func TestClientRepromptsAfterInvalidBid(t *testing.T) {
	clientSide, serverSide := net.Pipe()

	go runScript(t, serverSide, []scriptedStep{
		{send: []string{protocol.MsgConnected, protocol.MsgRoleBuyer, protocol.MsgBiddingStarted}, expect: "abc"},
		{send: []string{protocol.MsgInvalidBid}, expect: "150"},
		{send: []string{protocol.MsgBidReceived, protocol.MsgBuyerLost}},
	})

	out, err := runClient(t, clientSide, "abc\n150\n")
	require.NoError(t, err)

	assert.Contains(t, out, protocol.MsgInvalidBid)
	assert.Contains(t, out, protocol.MsgBuyerLost)
}
