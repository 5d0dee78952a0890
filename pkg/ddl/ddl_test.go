package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

func ordersTable() *models.Table {
	return &models.Table{
		ID:     1,
		Schema: "sales",
		Name:   "orders",
		Columns: []models.Column{
			{Name: "id", Type: models.ColumnInteger},
			{Name: "amount", Type: models.ColumnFloat},
			{Name: "paid", Type: models.ColumnBoolean},
			{Name: "created", Type: models.ColumnDatetime},
			{Name: "note", Type: models.ColumnString},
			{Name: "total", Type: "decimal(10,2)"},
		},
	}
}

const ordersColumns = "CREATE EXTERNAL TABLE sales.orders (\n" +
	"  `id` BIGINT,\n" +
	"  `amount` DOUBLE,\n" +
	"  `paid` BOOLEAN,\n" +
	"  `created` DATE,\n" +
	"  `note` STRING,\n" +
	"  `total` decimal(10,2)\n" +
	")\n"

func TestCreateTable(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "hive csv",
			opts: Options{Language: Hive, Format: FormatCSV, Location: "s3://bucket/orders"},
			want: ordersColumns +
				"ROW FORMAT SERDE 'org.apache.hadoop.hive.serde2.OpenCSVSerde'\n" +
				"FIELDS TERMINATED BY ','\n" +
				"STORED AS TEXTFILE\n" +
				"LOCATION 's3://bucket/orders'\n" +
				`TBLPROPERTIES ("skip.header.line.count"="1")`,
		},
		{
			name: "hive parquet",
			opts: Options{Language: Hive, Format: FormatParquet, Location: "s3://bucket/orders"},
			want: ordersColumns +
				"STORED AS PARQUET\n" +
				"LOCATION 's3://bucket/orders'",
		},
		{
			name: "sparksql matches hive",
			opts: Options{Language: SparkSQL, Format: FormatParquet, Location: "/data/orders"},
			want: ordersColumns +
				"STORED AS PARQUET\n" +
				"LOCATION '/data/orders'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreateTable(ordersTable(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateTable_Errors(t *testing.T) {
	valid := Options{Language: Hive, Format: FormatCSV, Location: "/data"}

	tests := []struct {
		name    string
		table   *models.Table
		opts    Options
		wantErr error
	}{
		{"unknown language", ordersTable(), Options{Language: "presto", Format: FormatCSV, Location: "/data"}, ErrUnsupportedLanguage},
		{"unknown format", ordersTable(), Options{Language: Hive, Format: "ORC", Location: "/data"}, ErrUnsupportedFormat},
		{"no columns", &models.Table{Name: "empty"}, valid, ErrNoColumns},
		{"no location", ordersTable(), Options{Language: Hive, Format: FormatCSV, Location: " "}, ErrNoLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateTable(tt.table, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTable_Quoting(t *testing.T) {
	table := &models.Table{
		Name:    "odd",
		Columns: []models.Column{{Name: "we`ird", Type: models.ColumnString}},
	}

	got, err := CreateTable(table, Options{Language: Hive, Format: FormatParquet, Location: "/data/o'brien"})
	require.NoError(t, err)
	assert.Contains(t, got, "CREATE EXTERNAL TABLE odd (\n  `we``ird` STRING\n)")
	assert.Contains(t, got, `LOCATION '/data/o\'brien'`)
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{"hive", Hive, false},
		{"SparkSQL", SparkSQL, false},
		{" hive ", Hive, false},
		{"presto", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedLanguage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"Parquet", FormatParquet, false},
		{"orc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"hive", "sparksql"}, Languages())
}
