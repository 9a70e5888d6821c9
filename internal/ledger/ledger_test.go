package ledger_test

import (
	"testing"
	"time"

	"github.com/Satyam6458/HR-Management/internal/ledger"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkingDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"single monday", "2024-06-03", "2024-06-03", 1},
		{"single friday", "2024-06-07", "2024-06-07", 1},
		{"single saturday", "2024-06-08", "2024-06-08", 0},
		{"single sunday", "2024-06-09", "2024-06-09", 0},
		{"full week", "2024-06-03", "2024-06-09", 5},
		{"weekend only", "2024-06-08", "2024-06-09", 0},
		{"friday to monday", "2024-06-07", "2024-06-10", 2},
		{"two weeks", "2024-06-03", "2024-06-16", 10},
		{"start after end", "2024-06-10", "2024-06-03", 0},
		{"across month end", "2024-05-30", "2024-06-04", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.WorkingDays(date(tt.start), date(tt.end)))
		})
	}
}

func TestWorkingDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 6, 3, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 6, 4, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, ledger.WorkingDays(start, end))
}

func TestDebit(t *testing.T) {
	t.Run("sufficient balance", func(t *testing.T) {
		in := ledger.Balance{"Casual Leave": 3}
		out, ok := ledger.Debit(in, "Casual Leave", 2)

		assert.True(t, ok)
		assert.Equal(t, ledger.Balance{"Casual Leave": 1}, out)
		assert.Equal(t, ledger.Balance{"Casual Leave": 3}, in, "input must not be mutated")
	})

	t.Run("exact balance", func(t *testing.T) {
		out, ok := ledger.Debit(ledger.Balance{"Sick Leave": 2}, "Sick Leave", 2)
		assert.True(t, ok)
		assert.Equal(t, 0, out["Sick Leave"])
	})

	t.Run("insufficient balance", func(t *testing.T) {
		in := ledger.Balance{"Casual Leave": 1}
		out, ok := ledger.Debit(in, "Casual Leave", 2)

		assert.False(t, ok)
		assert.Equal(t, ledger.Balance{"Casual Leave": 1}, out)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		_, ok := ledger.Debit(ledger.Balance{"Casual Leave": 10}, "Sabbatical", 1)
		assert.False(t, ok)
	})

	t.Run("loss of pay always succeeds", func(t *testing.T) {
		out, ok := ledger.Debit(ledger.Balance{}, ledger.LossOfPay, 3)
		assert.True(t, ok)
		assert.Equal(t, 3, out[ledger.LossOfPay])

		out, ok = ledger.Debit(out, ledger.LossOfPay, 2)
		assert.True(t, ok)
		assert.Equal(t, 5, out[ledger.LossOfPay])
	})

	t.Run("nil balance", func(t *testing.T) {
		out, ok := ledger.Debit(nil, ledger.LossOfPay, 1)
		assert.True(t, ok)
		assert.Equal(t, 1, out[ledger.LossOfPay])
	})
}

func TestCredit(t *testing.T) {
	t.Run("regular type grows", func(t *testing.T) {
		out := ledger.Credit(ledger.Balance{"Casual Leave": 1}, "Casual Leave", 2)
		assert.Equal(t, 3, out["Casual Leave"])
	})

	t.Run("missing regular type is created", func(t *testing.T) {
		out := ledger.Credit(ledger.Balance{}, "Earned Leave", 2)
		assert.Equal(t, 2, out["Earned Leave"])
	})

	t.Run("loss of pay shrinks", func(t *testing.T) {
		out := ledger.Credit(ledger.Balance{ledger.LossOfPay: 5}, ledger.LossOfPay, 3)
		assert.Equal(t, 2, out[ledger.LossOfPay])
	})

	t.Run("negative result is clamped and observed", func(t *testing.T) {
		var gotType string
		var gotRaw int
		observer := func(leaveType string, unclamped int) {
			gotType = leaveType
			gotRaw = unclamped
		}

		out := ledger.Credit(ledger.Balance{ledger.LossOfPay: 1}, ledger.LossOfPay, 3, observer)

		assert.Equal(t, 0, out[ledger.LossOfPay])
		assert.Equal(t, ledger.LossOfPay, gotType)
		assert.Equal(t, -2, gotRaw)
	})

	t.Run("observer not called without clamp", func(t *testing.T) {
		called := false
		ledger.Credit(ledger.Balance{"Casual Leave": 0}, "Casual Leave", 1, func(string, int) { called = true })
		assert.False(t, called)
	})
}

func TestDebitThenCreditRestoresBalance(t *testing.T) {
	days := ledger.WorkingDays(date("2024-06-03"), date("2024-06-09"))

	for _, leaveType := range []string{"Casual Leave", ledger.LossOfPay} {
		before := ledger.Balance{"Casual Leave": 7, ledger.LossOfPay: 1}

		debited, ok := ledger.Debit(before, leaveType, days)
		assert.True(t, ok)

		restored := ledger.Credit(debited, leaveType, days)
		assert.Equal(t, before, restored, leaveType)
	}
}

func TestBalance_ScanValue(t *testing.T) {
	var b ledger.Balance
	assert.NoError(t, b.Scan([]byte(`{"Casual Leave":3,"Loss Of Pay":1}`)))
	assert.Equal(t, ledger.Balance{"Casual Leave": 3, ledger.LossOfPay: 1}, b)

	assert.NoError(t, b.Scan(nil))
	assert.Equal(t, ledger.Balance{}, b)

	assert.NoError(t, b.Scan(""))
	assert.Equal(t, ledger.Balance{}, b)

	assert.Error(t, b.Scan(42))
	assert.Error(t, b.Scan("{not json"))

	v, err := ledger.Balance{"Sick Leave": 4}.Value()
	assert.NoError(t, err)
	assert.Equal(t, `{"Sick Leave":4}`, v)

	v, err = ledger.Balance(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, "{}", v)
}
