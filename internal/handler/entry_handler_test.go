package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntryUnion(t *testing.T) {
	t.Run("single object becomes a one-element batch", func(t *testing.T) {
		body := `{"date":"2024-01-10","location":"Site A","method":"UT_THK","hours":"3.0"}`
		reqs, err := decodeEntryUnion(strings.NewReader(body))

		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
		assert.Equal(t, "UT_THK", reqs[0].Method)
	})

	t.Run("array is decoded as-is", func(t *testing.T) {
		body := `[
			{"date":"2024-01-10","location":"Site A","method":"ET","hours":"2.5"},
			{"date":"2024-01-11","location":"Site B","method":"MT","hours":"4.0"}
		]`
		reqs, err := decodeEntryUnion(strings.NewReader(body))

		assert.NoError(t, err)
		assert.Len(t, reqs, 2)
		assert.Equal(t, "ET", reqs[0].Method)
		assert.Equal(t, "MT", reqs[1].Method)
	})

	t.Run("leading whitespace does not confuse the sniff", func(t *testing.T) {
		body := "\n\t [{\"date\":\"2024-01-10\",\"location\":\"Site A\",\"method\":\"ET\",\"hours\":\"1.0\"}]"
		reqs, err := decodeEntryUnion(strings.NewReader(body))

		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
	})

	t.Run("empty body is an error", func(t *testing.T) {
		_, err := decodeEntryUnion(strings.NewReader("   "))
		assert.Error(t, err)
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		_, err := decodeEntryUnion(strings.NewReader(`{"date":`))
		assert.Error(t, err)
	})
}

func TestEntryCreateRequest_ToInput(t *testing.T) {
	t.Run("valid fields parse", func(t *testing.T) {
		in, err := EntryCreateRequest{Date: "2024-01-10", Location: "Site A", Method: "UT_THK", Hours: "3.0"}.toInput()
		assert.NoError(t, err)
		assert.Equal(t, "Site A", in.Location)
		assert.Equal(t, "3", in.Hours.String())
	})

	t.Run("bad date format is rejected", func(t *testing.T) {
		_, err := EntryCreateRequest{Date: "01/10/2024", Location: "Site A", Method: "ET", Hours: "1.0"}.toInput()
		assert.Error(t, err)
	})

	t.Run("non-numeric hours are rejected", func(t *testing.T) {
		_, err := EntryCreateRequest{Date: "2024-01-10", Location: "Site A", Method: "ET", Hours: "lots"}.toInput()
		assert.Error(t, err)
	})
}
