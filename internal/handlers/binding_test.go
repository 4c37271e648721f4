package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Name       string  `json:"name" binding:"required"`
	MonthlyFee float64 `json:"monthly_fee"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "wrapped payload",
			key:      "student",
			body:     `{"student": {"name": "Ali Raza", "monthly_fee": 3000}}`,
			expected: bindTarget{Name: "Ali Raza", MonthlyFee: 3000},
		},
		{
			name:     "flat payload",
			key:      "student",
			body:     `{"name": "Bilal", "monthly_fee": 2500}`,
			expected: bindTarget{Name: "Bilal", MonthlyFee: 2500},
		},
		{
			name:     "missing key falls back to flat",
			key:      "student",
			body:     `{"other": "x", "name": "Zara", "monthly_fee": 2000}`,
			expected: bindTarget{Name: "Zara", MonthlyFee: 2000},
		},
		{
			name:        "wrapped but invalid field type",
			key:         "student",
			body:        `{"student": {"name": "Frank", "monthly_fee": "invalid"}}`,
			expectError: true,
		},
		{
			name:        "wrapped key is not an object",
			key:         "student",
			body:        `{"student": "some string"}`,
			expectError: true,
		},
		{
			name:        "wrapped payload missing required field",
			key:         "student",
			body:        `{"student": {"monthly_fee": 3000}}`,
			expectError: true,
		},
		{
			name:        "flat payload missing required field",
			key:         "student",
			body:        `{"monthly_fee": 2500}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
