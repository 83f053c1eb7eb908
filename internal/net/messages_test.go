package net

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	. "fenrir/internal/common"
)

func encodeNewOrder(assetType AssetType, orderType OrderType, ticker string, price float64, qty uint64, side Side, username string) []byte {
	buf := make([]byte, BaseMessageHeaderLen+NewOrderMessageHeaderLen+len(username))
	binary.BigEndian.PutUint16(buf[0:2], uint16(NewOrder))
	binary.BigEndian.PutUint16(buf[2:4], uint16(assetType))
	binary.BigEndian.PutUint16(buf[4:6], uint16(orderType))
	tickerBytes := make([]byte, 4)
	copy(tickerBytes, ticker)
	copy(buf[6:10], tickerBytes)
	binary.BigEndian.PutUint64(buf[10:18], math.Float64bits(price))
	binary.BigEndian.PutUint64(buf[18:26], qty)
	buf[26] = byte(side)
	buf[27] = uint8(len(username))
	copy(buf[28:], username)
	return buf
}

func TestParseMessage_NewOrderRoundTrips(t *testing.T) {
	raw := encodeNewOrder(Equities, LimitOrder, "AAPL", 123.45, 10, Buy, "alice")

	msg, err := parseMessage(raw)
	assert.NoError(t, err)
	assert.Equal(t, NewOrder, msg.GetType())

	order, ok := msg.(NewOrderMessage)
	assert.True(t, ok)
	assert.Equal(t, Equities, order.AssetType)
	assert.Equal(t, LimitOrder, order.OrderType)
	assert.Equal(t, "AAPL", order.Ticker)
	assert.InDelta(t, 123.45, order.LimitPrice, 0.0001)
	assert.Equal(t, uint64(10), order.Quantity)
	assert.Equal(t, Buy, order.Side)
	assert.Equal(t, "alice", order.Username)
}

func TestParseMessage_NewOrderTooShortForUsername(t *testing.T) {
	raw := encodeNewOrder(Equities, LimitOrder, "AAPL", 1, 1, Buy, "alice")
	truncated := raw[:len(raw)-2]

	_, err := parseMessage(truncated)
	assert.ErrorIs(t, err, ErrMessageTooShort)
}

func TestNewOrderMessage_OrderAssignsFreshUUID(t *testing.T) {
	m := NewOrderMessage{
		AssetType:  Equities,
		OrderType:  LimitOrder,
		Ticker:     "AAPL",
		LimitPrice: 10,
		Quantity:   5,
		Side:       Buy,
		Username:   "alice",
	}

	order, err := m.Order()
	assert.NoError(t, err)
	assert.NotEmpty(t, order.UUID)
	assert.Equal(t, "alice", order.Owner)
	assert.Equal(t, Equities, order.AssetType)
}

func encodeCancelOrder(assetType AssetType, uuid string) []byte {
	buf := make([]byte, BaseMessageHeaderLen+CancelOrderMessageHeaderLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(CancelOrder))
	binary.BigEndian.PutUint16(buf[2:4], uint16(assetType))
	uuidBytes := make([]byte, 16)
	copy(uuidBytes, uuid)
	copy(buf[4:20], uuidBytes)
	return buf
}

func TestParseMessage_CancelOrderRoundTrips(t *testing.T) {
	raw := encodeCancelOrder(Equities, "0123456789abcdef")

	msg, err := parseMessage(raw)
	assert.NoError(t, err)
	assert.Equal(t, CancelOrder, msg.GetType())

	cancel, ok := msg.(CancelOrderMessage)
	assert.True(t, ok)
	assert.Equal(t, Equities, cancel.AssetType)
	assert.Equal(t, "0123456789abcdef", cancel.OrderUUID)
}

func TestParseMessage_LogBookHasNoBody(t *testing.T) {
	buf := make([]byte, BaseMessageHeaderLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(LogBook))

	msg, err := parseMessage(buf)
	assert.NoError(t, err)
	assert.Equal(t, LogBook, msg.GetType())
}

func TestParseMessage_UnknownTypeRejected(t *testing.T) {
	buf := make([]byte, BaseMessageHeaderLen)
	binary.BigEndian.PutUint16(buf[0:2], 99)

	_, err := parseMessage(buf)
	assert.ErrorIs(t, err, ErrInvalidMessageType)
}

func TestParseMessage_TooShortForHeaderRejected(t *testing.T) {
	_, err := parseMessage([]byte{0})
	assert.Error(t, err)
}

func TestReport_SerializeRoundTripsFixedFields(t *testing.T) {
	r := Report{
		MessageType:     ExecutionReport,
		AssetType:       Equities,
		Side:            Buy,
		Timestamp:       1700000000,
		Quantity:        42,
		Price:           10.5,
		CounterpartyLen: 3,
		ErrStrLen:       0,
		Ticker:          "AAPL",
		UUID:            "0123456789abcdef",
		Counterparty:    "bob",
	}

	buf, err := r.Serialize()
	assert.NoError(t, err)
	assert.Equal(t, byte(ExecutionReport), buf[0])
	assert.Equal(t, byte(Equities), buf[1])
	assert.Equal(t, byte(Buy), buf[2])
	assert.Equal(t, uint64(1700000000), binary.BigEndian.Uint64(buf[3:11]))
	assert.Equal(t, uint64(42), binary.BigEndian.Uint64(buf[11:19]))
	assert.InDelta(t, 10.5, math.Float64frombits(binary.BigEndian.Uint64(buf[19:27])), 0.0001)
	assert.Equal(t, "AAPL", string(buf[33:37]))
	assert.Equal(t, "bob", string(buf[reportFixedHeaderLen:]))
}

func TestGenerateWireTradeReports_ProducesOneReportPerParty(t *testing.T) {
	party := &Order{UUID: "0123456789abcdef", AssetType: Equities, Side: Buy, Ticker: "AAPL", Owner: "alice"}
	counterParty := &Order{UUID: "fedcba9876543210", AssetType: Equities, Side: Sell, Ticker: "AAPL", Owner: "bob"}
	trade := Trade{Party: party, CounterParty: counterParty, MatchQty: 5, Price: 10.0}

	b1, b2, err := generateWireTradeReports(trade)
	assert.NoError(t, err)
	assert.NotEmpty(t, b1)
	assert.NotEmpty(t, b2)
	assert.NotEqual(t, b1, b2)
}

func TestGenerateWireErrorReports_EncodesMessage(t *testing.T) {
	buf, err := generateWireErrorReports(ErrInvalidMessageType)
	assert.NoError(t, err)
	assert.Equal(t, byte(ErrorReport), buf[0])
}
