package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadValidCSV(t *testing.T) {
	csv := "sample_id,test_name,value,lower_limit,upper_limit,unit\n" +
		"A,T1,5,0,10,V\n" +
		"B,T1,15,0,10,V\n"

	table, err := Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, table, 2)

	assert.Equal(t, "A", table[0].SampleID)
	assert.Equal(t, "T1", table[0].TestName)
	assert.Equal(t, 5.0, table[0].Value)
	assert.Equal(t, 0.0, table[0].LowerLimit)
	assert.Equal(t, 10.0, table[0].UpperLimit)
	assert.Equal(t, "V", table[0].Unit)
	assert.Empty(t, table[0].Status)

	assert.Equal(t, "B", table[1].SampleID)
	assert.Equal(t, 15.0, table[1].Value)
}

func TestLoadUnitColumnOptional(t *testing.T) {
	csv := "sample_id,test_name,value,lower_limit,upper_limit\nA,T1,5,0,10\n"

	table, err := Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "", table[0].Unit)
}

func TestLoadMissingColumns(t *testing.T) {
	csv := "sample_id,value,extra\nA,5,x\n"

	_, err := Load(strings.NewReader(csv))
	require.Error(t, err)

	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, KindSchema, derr.Kind)
	assert.Equal(t, []string{"lower_limit", "test_name", "upper_limit"}, derr.Columns)
}

func TestLoadEmptyFileReportsAllColumnsMissing(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	require.Error(t, err)

	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, KindSchema, derr.Kind)
	assert.Len(t, derr.Columns, len(RequiredColumns))
}

func TestLoadNonNumericValue(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		col  string
	}{
		{
			name: "value column",
			csv:  "sample_id,test_name,value,lower_limit,upper_limit\nA,T1,abc,0,10\n",
			col:  "value",
		},
		{
			name: "lower_limit column",
			csv:  "sample_id,test_name,value,lower_limit,upper_limit\nA,T1,5,low,10\n",
			col:  "lower_limit",
		},
		{
			name: "upper_limit column",
			csv:  "sample_id,test_name,value,lower_limit,upper_limit\nA,T1,5,0,high\n",
			col:  "upper_limit",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.csv))
			require.Error(t, err)

			var derr *Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, KindType, derr.Kind)
			assert.Equal(t, []string{tc.col}, derr.Columns)
		})
	}
}

func TestLoadExtraColumnsIgnored(t *testing.T) {
	csv := "operator,sample_id,test_name,value,lower_limit,upper_limit,unit,station\n" +
		"jan,A,T1,5,0,10,V,st-04\n"

	table, err := Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "A", table[0].SampleID)
	assert.Equal(t, "V", table[0].Unit)
}

func TestLoadZeroRowsIsValid(t *testing.T) {
	csv := "sample_id,test_name,value,lower_limit,upper_limit\n"

	table, err := Load(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, table)
}
