package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		result HookResult
		want   string
	}{
		{
			name:   "nothing committed",
			result: ContinueResult(MessageNoChanges),
			want:   `{"decision":"continue","message":"no changes","committed":false,"commitHash":null}`,
		},
		{
			name:   "committed",
			result: HookResult{Decision: DecisionBlock, Message: "breaks build", Committed: true, CommitHash: "abc123"},
			want:   `{"decision":"block","message":"breaks build","committed":true,"commitHash":"abc123"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var decoded HookResult
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.result, decoded)
		})
	}
}
