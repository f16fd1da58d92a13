package warehouse

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grantstack-labs/grantsql/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWarehouse(t *testing.T) *Warehouse {
	t.Helper()
	wh, err := New(Config{DBPath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = wh.Close() })
	return wh
}

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// writeAllSources writes a small version of each of the six expected extracts.
func writeAllSources(t *testing.T, dir string) {
	t.Helper()
	writeCSV(t, dir, "grants.csv", `opportunity_id,opportunity_title,agency_name,award_ceiling,award_floor,estimated_total_program_funding,close_date,opportunity_category
g1,Community Health,HHS,500000,10000,2000000,2099-01-01,Health
g2,Food Security,USDA,250000,5000,1000000,2020-01-01,Food`)
	writeCSV(t, dir, "grants_final.csv", `opportunity_id,opportunity_title,award_ceiling
g1,Community Health,500000`)
	writeCSV(t, dir, "non-profits.csv", `EIN,STATE,CLASSIFICATION,INCOME_AMT,ASSET_AMT,REVENUE_AMT
11,CA,1000,10,100,50
12,CA,1000,20,200,60
13,NY,2000,5,50,25`)
	writeCSV(t, dir, "non-profits_final.csv", `EIN,NAME,STATE,CITY,CLASSIFICATION,impact_score_numeric,financial_metric,impact_efficiency,INCOME_AMT,ASSET_AMT
11,Alpha,CA,Fresno,1000,8.5,0.7,1.2,10,100
12,Beta,CA,Oakland,1000,6.0,0.5,0.9,20,200`)
	writeCSV(t, dir, "nonprofit_anomalies.csv", `EIN,is_anomalous,anomaly_type,risk_level,anomaly_score
11,1,financial,high,0.92
12,0,none,low,0.05`)
	writeCSV(t, dir, "nonprofit_quality.csv", `EIN,data_quality,confidence_score,has_mission,has_financial,has_impact
11,high,0.95,1,1,1
12,low,0.40,1,0,0`)
}

func TestLoadSources_AllPresent(t *testing.T) {
	wh := newTestWarehouse(t)
	dataDir := t.TempDir()
	writeAllSources(t, dataDir)

	report, err := wh.LoadSources(context.Background(), dataDir, DefaultSources())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Len(t, report.Tables, 6)
	assert.Empty(t, report.Missing)

	tables, err := wh.ListTables(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"grants", "grants_final", "non_profits",
		"non_profits_final", "nonprofit_anomalies", "nonprofit_quality",
	}, tables)
}

func TestLoadSources_PartialDirectory(t *testing.T) {
	wh := newTestWarehouse(t)
	dataDir := t.TempDir()

	// Only 4 of the 6 expected files exist
	writeCSV(t, dataDir, "grants.csv", "opportunity_id,award_ceiling\ng1,100\n")
	writeCSV(t, dataDir, "non-profits.csv", "EIN,STATE\n11,CA\n")
	writeCSV(t, dataDir, "nonprofit_anomalies.csv", "EIN,is_anomalous\n11,1\n")
	writeCSV(t, dataDir, "nonprofit_quality.csv", "EIN,data_quality\n11,high\n")

	report, err := wh.LoadSources(context.Background(), dataDir, DefaultSources())
	require.NoError(t, err)

	assert.Len(t, report.Tables, 4)
	assert.ElementsMatch(t, []string{"grants_final.csv", "non-profits_final.csv"}, report.Missing)

	// Absent sources produce absent tables, not empty ones
	_, err = wh.DescribeTable(context.Background(), "grants_final")
	var nf *adapter.TableNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "grants_final", nf.Table)

	tables, err := wh.ListTables(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables, 4)
}

func TestLoadSources_IdempotentReplace(t *testing.T) {
	wh := newTestWarehouse(t)
	dataDir := t.TempDir()
	writeAllSources(t, dataDir)

	ctx := context.Background()
	_, err := wh.LoadSources(ctx, dataDir, DefaultSources())
	require.NoError(t, err)

	first, err := wh.Execute(ctx, "SELECT * FROM non_profits ORDER BY EIN")
	require.NoError(t, err)

	report, err := wh.LoadSources(ctx, dataDir, DefaultSources())
	require.NoError(t, err)

	second, err := wh.Execute(ctx, "SELECT * FROM non_profits ORDER BY EIN")
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	for _, tr := range report.Tables {
		if tr.Table == "non_profits" {
			assert.EqualValues(t, 3, tr.Rows)
		}
	}
}

func TestLoadSources_RowColumnFidelity(t *testing.T) {
	wh := newTestWarehouse(t)
	dataDir := t.TempDir()
	writeCSV(t, dataDir, "grants.csv", `a,b,c,d,e
1,2,3,4,5
6,7,8,9,10
11,12,13,14,15`)

	report, err := wh.LoadSources(context.Background(), dataDir,
		[]Source{{Table: "grants", File: "grants.csv"}})
	require.NoError(t, err)

	require.Len(t, report.Tables, 1)
	assert.EqualValues(t, 3, report.Tables[0].Rows)
	assert.Equal(t, 5, report.Tables[0].Columns)

	info, err := wh.DescribeTable(context.Background(), "grants")
	require.NoError(t, err)
	assert.EqualValues(t, 3, info.RowCount)
	assert.Len(t, info.Columns, 5)
}

func TestLoadSources_ParseErrorKeepsEarlierTables(t *testing.T) {
	wh := newTestWarehouse(t)
	dataDir := t.TempDir()
	writeCSV(t, dataDir, "grants.csv", "opportunity_id,award_ceiling\ng1,100\n")
	writeCSV(t, dataDir, "non-profits.csv", "EIN,STATE\n11,CA,extra\n")

	_, err := wh.LoadSources(context.Background(), dataDir, []Source{
		{Table: "grants", File: "grants.csv"},
		{Table: "non_profits", File: "non-profits.csv"},
	})

	var pe *adapter.ParseError
	require.ErrorAs(t, err, &pe)

	// The table loaded before the failure is intact
	info, err := wh.DescribeTable(context.Background(), "grants")
	require.NoError(t, err)
	assert.EqualValues(t, 1, info.RowCount)
}

func TestDescribeTable_Sample(t *testing.T) {
	wh := newTestWarehouse(t)
	dataDir := t.TempDir()
	writeCSV(t, dataDir, "grants.csv", `id,title
1,a
2,b
3,c
4,d
5,e
6,f
7,g`)

	_, err := wh.LoadSources(context.Background(), dataDir,
		[]Source{{Table: "grants", File: "grants.csv"}})
	require.NoError(t, err)

	info, err := wh.DescribeTable(context.Background(), "grants")
	require.NoError(t, err)

	assert.EqualValues(t, 7, info.RowCount)
	assert.Len(t, info.Sample, 5)
	assert.Equal(t, "a", info.Sample[0]["title"])
}

func TestExecute_BoundArgs(t *testing.T) {
	wh := newTestWarehouse(t)
	dataDir := t.TempDir()
	writeAllSources(t, dataDir)

	ctx := context.Background()
	_, err := wh.LoadSources(ctx, dataDir, DefaultSources())
	require.NoError(t, err)

	res, err := wh.Execute(ctx, "SELECT EIN FROM non_profits WHERE STATE = ? ORDER BY EIN LIMIT ?", "CA", 1)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.EqualValues(t, 11, res.Rows[0]["EIN"])
}

func TestExecute_QueryErrorSurfaced(t *testing.T) {
	wh := newTestWarehouse(t)

	_, err := wh.Execute(context.Background(), "SELEC broken")
	require.Error(t, err)

	var qe *adapter.QueryError
	assert.True(t, errors.As(err, &qe), "expected QueryError, got %T", err)
}

func TestNew_UnknownStoreType(t *testing.T) {
	_, err := New(Config{StoreType: "mssql"})
	require.Error(t, err)

	var ue *adapter.UnknownAdapterError
	assert.ErrorAs(t, err, &ue)
}

func TestEnsureConnected_CreatesParentDirs(t *testing.T) {
	base := t.TempDir()
	dbPath := filepath.Join(base, "outputs", "nested", "grants.db")

	wh, err := New(Config{DBPath: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = wh.Close() })

	dataDir := t.TempDir()
	writeCSV(t, dataDir, "grants.csv", "id\n1\n")
	_, err = wh.LoadSources(context.Background(), dataDir,
		[]Source{{Table: "grants", File: "grants.csv"}})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}
