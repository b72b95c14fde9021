// AngelaMos | 2026
// jsonlist_test.go

package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestJSONListScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want JSONList[item]
	}{
		{
			name: "bytes",
			src:  []byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`),
			want: JSONList[item]{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
		},
		{
			name: "string",
			src:  `[{"id":3,"name":"c"}]`,
			want: JSONList[item]{{ID: 3, Name: "c"}},
		},
		{name: "null", src: nil, want: JSONList[item]{}},
		{name: "json null", src: []byte("null"), want: JSONList[item]{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got JSONList[item]
			require.NoError(t, got.Scan(tt.src))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONListScanRejectsGarbage(t *testing.T) {
	var got JSONList[item]
	assert.Error(t, got.Scan(42))
	assert.Error(t, got.Scan([]byte("{not json")))
}

func TestJSONListMarshalsNilAsEmpty(t *testing.T) {
	var l JSONList[item]
	out, err := json.Marshal(struct {
		Items JSONList[item] `json:"items"`
	}{Items: l})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(out))
}
