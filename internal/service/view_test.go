package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_JSONCarriesOnlyPageState(t *testing.T) {
	raw, err := json.Marshal(View{Route: RouteLogin, Path: PathLogin, Auth: &AuthView{Errors: FieldErrors{"identifier": "required"}}})
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &got))
	keys := make([]string, 0, len(got))
	for k := range got {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"route", "path", "auth"}, keys)
	assert.JSONEq(t, `{"submitting":false,"errors":{"identifier":"required"}}`, string(got["auth"]))
}
