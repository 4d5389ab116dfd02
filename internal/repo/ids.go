package repo

import (
	"fmt"
	"sync"
	"time"
)

// Number prefixes for human-readable record numbers.
const (
	ProjectNumberPrefix = "PROJ-"
	InvoiceNumberPrefix = "INV-"
	ClientNumberPrefix  = "CLT-"
	PaymentNumberPrefix = "PAY-"
)

// IDGenerator hands out time-flavored int64 ids. Ids follow the wall clock
// in milliseconds but never repeat or go backwards within the process, so
// two records created in the same clock tick still get distinct ids.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

func (generator *IDGenerator) Next() int64 {
	generator.mu.Lock()
	defer generator.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= generator.last {
		id = generator.last + 1
	}
	generator.last = id
	return id
}

// formatNumber derives the human-readable number from the record id: the
// prefix plus the id's last six digits.
func formatNumber(prefix string, id int64) string {
	return fmt.Sprintf("%s%06d", prefix, id%1_000_000)
}
