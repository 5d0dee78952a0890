package ddl

import (
	"fmt"
	"strings"

	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

var hiveColumnTypes = map[string]string{
	models.ColumnBoolean:  "BOOLEAN",
	models.ColumnDatetime: "DATE",
	models.ColumnFloat:    "DOUBLE",
	models.ColumnInteger:  "BIGINT",
	models.ColumnString:   "STRING",
}

type hiveDialect struct{}

func (hiveDialect) createPrefix(table string) string {
	return "CREATE EXTERNAL TABLE " + table
}

func (hiveDialect) columnDef(column models.Column) string {
	typ := column.Type
	if mapped, ok := hiveColumnTypes[typ]; ok {
		typ = mapped
	}
	return quoteIdentifier(column.Name) + " " + typ
}

func (hiveDialect) storage(format Format, location string) ([]string, error) {
	switch format {
	case FormatCSV:
		return []string{
			"ROW FORMAT SERDE 'org.apache.hadoop.hive.serde2.OpenCSVSerde'",
			"FIELDS TERMINATED BY ','",
			"STORED AS TEXTFILE",
			"LOCATION " + quoteString(location),
			`TBLPROPERTIES ("skip.header.line.count"="1")`,
		}, nil
	case FormatParquet:
		return []string{
			"STORED AS PARQUET",
			"LOCATION " + quoteString(location),
		}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
}

// quoteIdentifier wraps name in backticks; embedded backticks double
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func quoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
