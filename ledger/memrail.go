package ledger

import (
	"sync"

	"github.com/royaltyorg/libroyalty-go/fixedpoint"
)

// Payment records a single value movement through a MemRail.
type Payment struct {
	To     [AddressSize]byte
	Amount fixedpoint.Dec
}

// MemRail is an in-memory PaymentRail test double. It records successful
// payments and can be made to fail by setting Err.
type MemRail struct {
	mu       sync.Mutex
	payments []Payment

	// Err, when non-nil, is returned by every TransferValue call.
	Err error
}

// Compile-time interface check.
var _ PaymentRail = (*MemRail)(nil)

// NewMemRail creates an always-succeeding in-memory rail.
func NewMemRail() *MemRail { return &MemRail{} }

// TransferValue records the payment, or fails with Err if set.
func (r *MemRail) TransferValue(to [AddressSize]byte, amount fixedpoint.Dec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.payments = append(r.payments, Payment{To: to, Amount: amount})
	return nil
}

// Payments returns a copy of all recorded payments.
func (r *MemRail) Payments() []Payment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Payment, len(r.payments))
	copy(out, r.payments)
	return out
}

// TotalPaid returns the sum of all recorded payments to an address.
func (r *MemRail) TotalPaid(to [AddressSize]byte) fixedpoint.Dec {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := fixedpoint.Zero()
	for _, p := range r.payments {
		if p.To == to {
			total = total.Add(p.Amount)
		}
	}
	return total
}
