package postgres

import (
	"fmt"
	"time"

	"rentalops-backend/internal/pricing"
)

// dateColumn scans a DATE column into its yyyy-mm-dd string form. lib/pq
// hands DATE values back as time.Time; without this the plain string
// destination ends up holding an RFC3339 timestamp.
type dateColumn struct {
	dst *string
}

func dateOf(dst *string) dateColumn {
	return dateColumn{dst: dst}
}

func (d dateColumn) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d.dst = v.Format(pricing.DateLayout)
	case []byte:
		*d.dst = string(v)
	case string:
		*d.dst = v
	case nil:
		*d.dst = ""
	default:
		return fmt.Errorf("unsupported date column value of type %T", src)
	}
	return nil
}
