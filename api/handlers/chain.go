package handlers

import (
	"sync"

	"github.com/luca-patrignani/hashchain/ledger"
)

// Ledger is the chain surface the handlers need. *ledger.Blockchain
// implements it.
type Ledger interface {
	Append(value string) ledger.Block
	Verify() error
	Len() int
	GetLatest() ledger.Block
	GetByIndex(index int) (ledger.Block, error)
	Blocks() []ledger.Block
}

// SyncLedger serializes access to a Ledger shared by concurrent requests.
// Appends are exclusive, reads and verification may overlap each other.
type SyncLedger struct {
	mu     sync.RWMutex
	ledger Ledger
}

func NewSyncLedger(l Ledger) *SyncLedger {
	return &SyncLedger{ledger: l}
}

func (s *SyncLedger) Append(value string) (ledger.Block, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	block := s.ledger.Append(value)
	return block, s.ledger.Len() - 1
}

func (s *SyncLedger) Verify() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Len(), s.ledger.Verify()
}

func (s *SyncLedger) Latest() (ledger.Block, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.GetLatest(), s.ledger.Len() - 1
}

func (s *SyncLedger) Get(index int) (ledger.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.GetByIndex(index)
}

func (s *SyncLedger) Blocks() []ledger.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Blocks()
}
