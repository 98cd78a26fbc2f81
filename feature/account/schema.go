package account

import (
	"fmt"
	"reflect"
	"strings"

	"account-db-compare/core/database"
)

// Schema check statuses.
const (
	SchemaOK    = "ok"
	SchemaWarn  = "warn"
	SchemaError = "error"
)

// SchemaReport strictly types the result of a store schema check.
type SchemaReport struct {
	Store          string   `json:"store"`
	Table          string   `json:"table"`
	Status         string   `json:"status"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Errors         []string `json:"errors"`
}

// CheckSchema verifies the account table against a GORM model used as the
// source of truth. Missing required columns are errors; missing optional
// columns and type differences are warnings, since the comparison can still run.
func (s *TableSource) CheckSchema(model any) (*SchemaReport, error) {
	val := reflect.TypeOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema model must be a struct, got %s", val.Kind())
	}

	report := &SchemaReport{
		Store:          s.name,
		Table:          s.profile.TableName,
		Status:         SchemaOK,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Errors:         []string{},
	}

	actualCols, err := database.GetTableColumns(s.db, s.profile.TableName)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.profile.TableName, err))
		report.Status = SchemaError
		return report, nil
	}
	if len(actualCols) == 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("%v: %s", ErrTableNotFound, s.profile.TableName))
		report.Status = SchemaError
		return report, nil
	}

	actualMap := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actualMap[col.Field] = col
	}

	required := make(map[string]struct{}, len(s.profile.Required))
	for _, field := range s.profile.Required {
		required[strings.ToLower(s.profile.Columns[field])] = struct{}{}
	}

	for i := 0; i < val.NumField(); i++ {
		gormTag := val.Field(i).Tag.Get("gorm")

		colName := strings.ToLower(parseGormColumn(gormTag))
		if colName == "" {
			continue
		}

		actCol, exists := actualMap[colName]
		if !exists {
			report.MissingColumns = append(report.MissingColumns, colName)
			if _, ok := required[colName]; ok {
				report.Status = SchemaError
			} else {
				report.raise(SchemaWarn)
			}
			continue
		}

		// Only check types declared on the model; sqlite affinities are loose.
		expType := strings.ToLower(parseGormType(gormTag))
		if expType != "" && actCol.Type != "" && !strings.Contains(actCol.Type, expType) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type))
			report.raise(SchemaWarn)
		}
	}

	return report, nil
}

func (r *SchemaReport) raise(status string) {
	if r.Status == SchemaOK {
		r.Status = status
	}
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
