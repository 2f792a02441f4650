package tx

import (
	"encoding/hex"
	"strings"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// Node types reported in metadata.
const (
	NodeCreated  = "CreatedNode"
	NodeModified = "ModifiedNode"
	NodeDeleted  = "DeletedNode"
)

// AffectedNode describes one entry touched by an operation.
type AffectedNode struct {
	NodeType        string `json:"node_type"`
	LedgerEntryType string `json:"ledger_entry_type"`
	LedgerIndex     string `json:"ledger_index"`
}

// Metadata tracks changes made by an operation
type Metadata struct {
	AffectedNodes []AffectedNode `json:"affected_nodes"`
}

// NewMetadata builds metadata from committed changes.
func NewMetadata(changes []Change) *Metadata {
	m := &Metadata{AffectedNodes: make([]AffectedNode, 0, len(changes))}
	for _, c := range changes {
		m.AffectedNodes = append(m.AffectedNodes, AffectedNode{
			NodeType:        nodeType(c.Action),
			LedgerEntryType: c.Key.Type.String(),
			LedgerIndex:     ledgerIndex(c.Key),
		})
	}
	return m
}

// Count returns the number of affected nodes of the given node type.
func (m *Metadata) Count(nodeType string) int {
	n := 0
	for _, node := range m.AffectedNodes {
		if node.NodeType == nodeType {
			n++
		}
	}
	return n
}

func nodeType(a Action) string {
	switch a {
	case ActionInsert:
		return NodeCreated
	case ActionErase:
		return NodeDeleted
	default:
		return NodeModified
	}
}

func ledgerIndex(k keylet.Keylet) string {
	return strings.ToUpper(hex.EncodeToString(k.Key[:]))
}
