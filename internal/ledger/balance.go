// Package ledger holds the per-employee leave balance and the arithmetic
// applied to it when leave is taken or given back.
package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LossOfPay is the one leave type that counts up instead of down. It has no
// entitlement and is never rejected for insufficient balance.
const LossOfPay = "Loss Of Pay"

// Balance maps a leave type name to a number of days. It is stored as JSON
// text in a single column of the employees table.
type Balance map[string]int

// Clone returns an independent copy. A nil balance clones to an empty one.
func (b Balance) Clone() Balance {
	out := make(Balance, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func (b Balance) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]int(b))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (b *Balance) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*b = Balance{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("ledger: cannot scan %T into Balance", src)
	}

	if len(data) == 0 {
		*b = Balance{}
		return nil
	}

	out := Balance{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("ledger: decode balance: %w", err)
	}
	*b = out
	return nil
}

// GormDataType lets gorm pick a text column when the schema is generated.
func (Balance) GormDataType() string {
	return "text"
}
