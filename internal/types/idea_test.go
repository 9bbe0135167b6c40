package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMentorRemarks_Validate(t *testing.T) {
	tests := []struct {
		name    string
		remarks MentorRemarks
		wantErr bool
	}{
		{name: "valid", remarks: MentorRemarks{Score: 7.5, PotentialCategory: PotentialHigh, Remarks: "solid"}},
		{name: "score only", remarks: MentorRemarks{Score: 3}},
		{name: "zero score", remarks: MentorRemarks{Score: 0}},
		{name: "score too high", remarks: MentorRemarks{Score: 10.5}, wantErr: true},
		{name: "negative score", remarks: MentorRemarks{Score: -1}, wantErr: true},
		{name: "unknown category", remarks: MentorRemarks{Score: 5, PotentialCategory: "Best"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.remarks.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
