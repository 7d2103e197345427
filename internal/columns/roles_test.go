package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmerle/ledgerstage/internal/pipelineerror"
)

func TestDetectRoles(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		expected RoleMap
	}{
		{
			"Canonical names",
			[]string{"Date", "Description", "Amount", "Type", "Category"},
			RoleMap{RoleDate: 0, RoleDescription: 1, RoleAmount: 2, RoleType: 3, RoleCategory: 4},
		},
		{
			"Synonyms",
			[]string{"Posted Date", "Memo", "Value", "Debit/Credit", "Merchant"},
			RoleMap{RoleDate: 0, RoleDescription: 1, RoleAmount: 2, RoleType: 3, RoleCategory: 4},
		},
		{
			"Transaction date beats transaction description match",
			[]string{"Transaction Date", "Transaction", "Total"},
			RoleMap{RoleDate: 0, RoleDescription: 1, RoleAmount: 2},
		},
		{
			"Case insensitive",
			[]string{"DATE", "dEsCrIpTiOn", "AMOUNT"},
			RoleMap{RoleDate: 0, RoleDescription: 1, RoleAmount: 2},
		},
		{
			"Shuffled column order",
			[]string{"Sum", "Category", "Date", "Details"},
			RoleMap{RoleAmount: 0, RoleCategory: 1, RoleDate: 2, RoleDescription: 3},
		},
		{
			"Role keeps its first column",
			[]string{"Date", "Posted Date", "Memo", "Amount"},
			RoleMap{RoleDate: 0, RoleDescription: 2, RoleAmount: 3},
		},
		{
			"Unknown headers ignored",
			[]string{"Date", "Balance", "Memo", "Amount", "Reference"},
			RoleMap{RoleDate: 0, RoleDescription: 2, RoleAmount: 3},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roles, err := DetectRoles(tc.header)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, roles)
		})
	}
}

func TestDetectRolesMandatoryRejection(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		missing []string
	}{
		{"No date match", []string{"memo", "value"}, []string{"date"}},
		{"No amount match", []string{"date", "description"}, []string{"amount"}},
		{"Nothing matches", []string{"foo", "bar"}, []string{"date", "description", "amount"}},
		{"Empty header", []string{""}, []string{"date", "description", "amount"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roles, err := DetectRoles(tc.header)
			require.Error(t, err)
			assert.Nil(t, roles)

			var rejected *pipelineerror.FileRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tc.missing, rejected.MissingRoles)
		})
	}
}

func TestDetectRolesOptionalRolesStayUnassigned(t *testing.T) {
	roles, err := DetectRoles([]string{"date", "description", "amount"})
	require.NoError(t, err)

	assert.False(t, roles.Has(RoleType))
	assert.False(t, roles.Has(RoleCategory))

	_, ok := roles.Index(RoleType)
	assert.False(t, ok)
}
