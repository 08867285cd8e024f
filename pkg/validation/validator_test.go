package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Username string  `json:"username" binding:"required,username"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,pwd"`
	Budget   float64 `json:"monthly_budget" binding:"omitempty,gte=0"`
}

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestToDetailsReportsEveryField(t *testing.T) {
	v := engine(t)
	err := v.Struct(samplePayload{Username: "x", Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Len(t, details, 3)
	assert.Equal(t, "must be 3-30 alphanumeric characters", details["username"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "min length 8", details["password"])
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	v := engine(t)
	err := v.Struct(samplePayload{Username: "alice", Email: "a@b.co", Password: "password123", Budget: -5})
	require.Error(t, err)

	details := ToDetails(err)
	_, hasGoName := details["Budget"]
	assert.False(t, hasGoName)
	assert.Equal(t, "must be greater than or equal to 0", details["monthly_budget"])
}

func TestToDetailsValidPayload(t *testing.T) {
	v := engine(t)
	err := v.Struct(samplePayload{Username: "alice", Email: "a@b.co", Password: "password123"})
	assert.NoError(t, err)
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsMalformedJSON(t *testing.T) {
	var p samplePayload
	err := json.Unmarshal([]byte(`{"username":`), &p)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetailsTypeMismatch(t *testing.T) {
	var p samplePayload
	err := json.Unmarshal([]byte(`{"monthly_budget":"lots"}`), &p)
	require.Error(t, err)
	details := ToDetails(err)
	assert.Contains(t, details["monthly_budget"], "must be of type")
}
