package triplestore

import (
	"encoding/binary"
	"fmt"

	"github.com/roach88/semstore/internal/rdf"
)

const (
	tableState   byte = 0x01
	tableCounter byte = 0x02
	tableTriple  byte = 0x03
	tableIndex   byte = 0x04
)

var (
	stateKey   = []byte{tableState}
	counterKey = []byte{tableCounter}
	triplesKey = []byte{tableTriple}
)

const (
	markNamed byte = 'n'
	markBlank byte = 'b'
)

func tripleKey(pk uint64) []byte {
	return binary.BigEndian.AppendUint64([]byte{tableTriple}, pk)
}

// indexPrefix returns the key prefix shared by every index entry of (s, p).
func indexPrefix(s rdf.Subject, p rdf.Predicate) []byte {
	key := []byte{tableIndex}
	switch s.Kind {
	case rdf.SubjectNamed:
		key = append(key, markNamed)
		key = appendNode(key, s.Node)
	case rdf.SubjectBlank:
		key = append(key, markBlank)
		key = appendString(key, s.Blank)
	default:
		panic(fmt.Sprintf("triplestore: unknown subject kind %d", s.Kind))
	}
	return appendNode(key, p)
}

func indexKey(s rdf.Subject, p rdf.Predicate, pk uint64) []byte {
	return binary.BigEndian.AppendUint64(indexPrefix(s, p), pk)
}

// pkSuffix reads the primary key from the last 8 bytes of a key.
func pkSuffix(key []byte) (uint64, error) {
	if len(key) < 9 {
		return 0, fmt.Errorf("key %x too short", key)
	}
	return binary.BigEndian.Uint64(key[len(key)-8:]), nil
}

func appendNode(b []byte, n rdf.Node) []byte {
	b = appendString(b, n.Namespace)
	return appendString(b, n.Value)
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}
