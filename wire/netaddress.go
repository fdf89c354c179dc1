package wire

import "github.com/icryptix/core/errors"

// NetAddress is the canonical serialization of a peer endpoint: it
// identifies a peer, not a moment, so equality deliberately ignores
// Timestamp (two observations of the same peer made at different times
// are still the same address).
//
// Wire layout, in order: Services (4), Timestamp (8), Host as a
// VarLenString (1 + len(Host)), Port (2), SignalID (4).
type NetAddress struct {
	Services  uint32
	Timestamp uint64
	Host      string
	Port      uint16
	SignalID  uint32
}

// netAddressFixedBytes is every field of NetAddress except the
// variable-length host.
const netAddressFixedBytes = 4 + 8 + 1 + 2 + 4

// NewNetAddress constructs a NetAddress, rejecting a host that cannot be
// represented by the 1-byte VarLenString length prefix.
func NewNetAddress(services uint32, timestamp uint64, host string, port uint16, signalID uint32) (*NetAddress, error) {
	if len(host) > MaxVarLenStringBytes {
		return nil, errors.NewInvalidArgumentError("host of %d bytes exceeds VarLenString capacity %d", len(host), MaxVarLenStringBytes)
	}

	return &NetAddress{
		Services:  services,
		Timestamp: timestamp,
		Host:      host,
		Port:      port,
		SignalID:  signalID,
	}, nil
}

// SerializedSize is 19 + len(Host).
func (a *NetAddress) SerializedSize() int {
	return netAddressFixedBytes + len(a.Host)
}

// Serialize writes the fields in wire order.
func (a *NetAddress) Serialize() ([]byte, error) {
	buf := NewWriter(a.SerializedSize())

	buf.WriteUint32(a.Services)
	buf.WriteUint64(a.Timestamp)

	if err := buf.WriteVarLenString(a.Host); err != nil {
		return nil, err
	}

	buf.WriteUint16(a.Port)
	buf.WriteUint32(a.SignalID)

	return buf.Bytes(), nil
}

// UnserializeNetAddress reads the fields in wire order.
func UnserializeNetAddress(data []byte) (*NetAddress, error) {
	buf := NewReader(data)

	services, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}

	timestamp, err := buf.ReadUint64()
	if err != nil {
		return nil, err
	}

	host, err := buf.ReadVarLenString()
	if err != nil {
		return nil, err
	}

	port, err := buf.ReadUint16()
	if err != nil {
		return nil, err
	}

	signalID, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}

	return &NetAddress{
		Services:  services,
		Timestamp: timestamp,
		Host:      host,
		Port:      port,
		SignalID:  signalID,
	}, nil
}

// Equals compares every field except Timestamp.
func (a *NetAddress) Equals(other *NetAddress) bool {
	if a == nil || other == nil {
		return a == other
	}

	return a.Services == other.Services &&
		a.Host == other.Host &&
		a.Port == other.Port &&
		a.SignalID == other.SignalID
}
