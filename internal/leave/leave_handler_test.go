package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Satyam6458/HR-Management/internal/leave"
	leaveerrors "github.com/Satyam6458/HR-Management/internal/leave/errors"
	"github.com/Satyam6458/HR-Management/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	applyFn        func(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	historyFn      func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	withdrawFn     func(ctx context.Context, id string) ([]leave.LeaveResponse, error)
	getAllFn       func(ctx context.Context) ([]leave.LeaveResponse, error)
	updateStatusFn func(ctx context.Context, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error)
	getBalanceFn   func(ctx context.Context, employeeID string) (ledger.Balance, error)
}

func (f *fakeLeaveService) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, req)
}
func (f *fakeLeaveService) History(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.historyFn(ctx, employeeID)
}
func (f *fakeLeaveService) Withdraw(ctx context.Context, id string) ([]leave.LeaveResponse, error) {
	return f.withdrawFn(ctx, id)
}
func (f *fakeLeaveService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeLeaveService) UpdateStatus(ctx context.Context, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	return f.updateStatusFn(ctx, id, req)
}
func (f *fakeLeaveService) GetBalance(ctx context.Context, employeeID string) (ledger.Balance, error) {
	return f.getBalanceFn(ctx, employeeID)
}

func TestLeaveHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, "Casual Leave", req.LeaveType)
				return leave.LeaveResponse{
					ID:          uuid.New().String(),
					EmployeeID:  req.EmployeeID,
					StartDate:   req.StartDate,
					EndDate:     req.EndDate,
					LeaveType:   req.LeaveType,
					Status:      leave.StatusPending,
					WorkingDays: 2,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employeeId":"` + employeeID + `","startDate":"2024-06-03","endDate":"2024-06-04","reason":"wedding","leaveType":"Casual Leave"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaveapplication", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
		assert.Equal(t, 2, got.WorkingDays)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaveapplication", strings.NewReader(`{"reason":"x"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative overlap carries range", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.Overlap("2024-06-03", "2024-06-05")
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employeeId":"` + uuid.New().String() + `","startDate":"2024-06-04","endDate":"2024-06-04","leaveType":"Casual Leave"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaveapplication", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "LEAVE_OVERLAP", env.Error.Code)
		assert.JSONEq(t, `{"overlap":{"startDate":"2024-06-03","endDate":"2024-06-05"}}`, string(env.Error.Details))
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employeeId":"` + uuid.New().String() + `","startDate":"2024-06-04","endDate":"2024-06-04","leaveType":"Casual Leave"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaveapplication", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INSUFFICIENT_BALANCE", env.Error.Code)
		assert.Equal(t, "Insufficient leave balance", env.Error.Message)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employeeId":"` + uuid.New().String() + `","startDate":"2024-06-04","endDate":"2024-06-04","leaveType":"Casual Leave"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaveapplication", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaveHandler_History(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success with pagination", func(t *testing.T) {
		employeeID := uuid.New().String()
		svc := &fakeLeaveService{
			historyFn: func(ctx context.Context, id string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, id)
				return []leave.LeaveResponse{
					{ID: "1", StartDate: "2024-06-17"},
					{ID: "2", StartDate: "2024-06-03"},
					{ID: "3", StartDate: "2024-05-20"},
				}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leavehistory/"+employeeID+"?page=2&page_size=2", nil)
		c.Params = []gin.Param{{Key: "employeeId", Value: employeeID}}

		h.History(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
		assert.JSONEq(t, `{"total":3,"totalPages":2,"page":2,"pageSize":2}`, string(env.Meta))
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeLeaveService{
			historyFn: func(ctx context.Context, id string) ([]leave.LeaveResponse, error) {
				return nil, errors.New("db error")
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leavehistory/x", nil)
		c.Params = []gin.Param{{Key: "employeeId", Value: "x"}}

		h.History(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.Equal(t, "Internal server error", env.Error.Message)
	})
}

func TestLeaveHandler_Withdraw(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns updated leaves", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			withdrawFn: func(ctx context.Context, id string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				return []leave.LeaveResponse{{ID: id, Status: leave.StatusWithdrawn}}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/withdrawLeave/"+leaveID, nil)
		c.Params = []gin.Param{{Key: "id", Value: leaveID}}

		h.Withdraw(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got leave.WithdrawLeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got.UpdatedLeaves, 1)
		assert.Equal(t, leave.StatusWithdrawn, got.UpdatedLeaves[0].Status)
	})

	t.Run("negative not withdrawable", func(t *testing.T) {
		svc := &fakeLeaveService{
			withdrawFn: func(ctx context.Context, id string) ([]leave.LeaveResponse, error) {
				return nil, leaveerrors.ErrNotWithdrawable
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/withdrawLeave/1", nil)
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		h.Withdraw(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Cannot withdraw this leave", env.Error.Message)
	})

	t.Run("negative unknown leave", func(t *testing.T) {
		svc := &fakeLeaveService{
			withdrawFn: func(ctx context.Context, id string) ([]leave.LeaveResponse, error) {
				return nil, leaveerrors.ErrLeaveNotFound
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/withdrawLeave/1", nil)
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		h.Withdraw(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeLeaveService{
		getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{{ID: "1", EmployeeName: "Asha Rao", Status: leave.StatusPending}}, nil
		},
	}
	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.Empty(t, env.Meta)
	var got []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Asha Rao", got[0].EmployeeName)
}

func TestLeaveHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			updateStatusFn: func(ctx context.Context, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Equal(t, leave.StatusApproved, req.Status)
				return leave.LeaveResponse{ID: id, Status: req.Status}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/"+leaveID, strings.NewReader(`{"status":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: leaveID}}

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusApproved, got.Status)
	})

	t.Run("negative missing status", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/1", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative terminal request", func(t *testing.T) {
		svc := &fakeLeaveService{
			updateStatusFn: func(ctx context.Context, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/1", strings.NewReader(`{"status":"rejected"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestLeaveHandler_GetBalance(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			getBalanceFn: func(ctx context.Context, id string) (ledger.Balance, error) {
				return ledger.Balance{"Casual Leave": 4}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employee/1/leavebalance", nil)
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		h.GetBalance(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.JSONEq(t, `{"leaveBalance":{"Casual Leave":4}}`, string(env.Data))
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		svc := &fakeLeaveService{
			getBalanceFn: func(ctx context.Context, id string) (ledger.Balance, error) {
				return nil, leaveerrors.ErrEmployeeNotFound
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employee/1/leavebalance", nil)
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		h.GetBalance(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
