package handlers

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindNestedOrFlat binds the request body to obj, accepting both the
// wrapped form {"student": {...}} and the flat form {...}. The web client
// sends wrapped payloads; scripts and older callers send flat ones.
// Binding tags on obj are enforced either way.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
	}
	// restore the body for any later reads
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &nested); err == nil {
		if val, ok := nested[key]; ok {
			if err := json.Unmarshal(val, obj); err != nil {
				return err
			}
			return binding.Validator.ValidateStruct(obj)
		}
	}

	if err := json.Unmarshal(bodyBytes, obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}
