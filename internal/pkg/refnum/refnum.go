// Package refnum generates human-readable reference numbers for bookings,
// orders and payments. Numbers sort by creation time thanks to the millisecond
// component; the uuid suffix keeps same-millisecond creations distinct.
package refnum

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt pins the clock, for tests.
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns a reference like "BK-1756720000000-A3F9".
func (g *Generator) Next(prefix string) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("%s-%d-%s", prefix, g.now().UnixMilli(), suffix)
}

const (
	PrefixBooking = "BK"
	PrefixOrder   = "ORD"
	PrefixPayment = "PAY"
)
