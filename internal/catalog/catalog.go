// Package catalog provides the fixed set of analytical queries over the
// schema produced by the warehouse loader. Each builder is a pure function
// from its parameters to ready-to-run query text; none mutate state.
//
// Caller-supplied row caps are passed as bound arguments (`?` placeholders
// with a matching Args entry), never spliced into the SQL text.
package catalog

// Query is a ready-to-run analytical query.
type Query struct {
	Name        string
	Description string
	SQL         string
	Args        []any
}

// Default row caps for the limit-accepting queries.
const (
	DefaultGrantLimit     = 10
	DefaultPerformerLimit = 25
)

// TopGrantsByFunding returns the grants with the highest award ceilings.
// Grants without an award ceiling are excluded.
func TopGrantsByFunding(limit int) Query {
	return Query{
		Name:        "top_grants_by_funding",
		Description: "Grants with the highest award ceilings",
		SQL: `
SELECT
    opportunity_title,
    agency_name,
    award_ceiling,
    award_floor,
    estimated_total_program_funding,
    close_date
FROM grants
WHERE award_ceiling IS NOT NULL
ORDER BY award_ceiling DESC
LIMIT ?`,
		Args: []any{limit},
	}
}

// NonprofitsByState profiles nonprofit distribution across states: counts,
// average income/assets/revenue, and total income for the 20 states with
// the most organizations. Rows without a state are excluded.
func NonprofitsByState() Query {
	return Query{
		Name:        "nonprofits_by_state",
		Description: "Nonprofit counts and financial averages per state",
		SQL: `
SELECT
    STATE,
    COUNT(*) AS org_count,
    AVG(INCOME_AMT) AS avg_income,
    AVG(ASSET_AMT) AS avg_assets,
    AVG(REVENUE_AMT) AS avg_revenue,
    SUM(INCOME_AMT) AS total_income
FROM non_profits
WHERE STATE IS NOT NULL AND STATE != ''
GROUP BY STATE
ORDER BY org_count DESC
LIMIT 20`,
	}
}

// ImpactByClassification profiles impact scores per nonprofit
// classification, restricted to classifications with at least 10 scored
// organizations.
func ImpactByClassification() Query {
	return Query{
		Name:        "impact_by_classification",
		Description: "Impact score profile per nonprofit classification",
		SQL: `
SELECT
    CLASSIFICATION,
    COUNT(*) AS org_count,
    AVG(impact_score_numeric) AS avg_impact,
    MIN(impact_score_numeric) AS min_impact,
    MAX(impact_score_numeric) AS max_impact,
    AVG(financial_metric) AS avg_financial,
    AVG(impact_efficiency) AS avg_efficiency
FROM non_profits_final
WHERE impact_score_numeric IS NOT NULL
GROUP BY CLASSIFICATION
HAVING COUNT(*) >= 10
ORDER BY avg_impact DESC`,
	}
}

// AnomalySummary counts detected anomalies grouped by type and risk level.
// Only rows flagged anomalous are counted.
func AnomalySummary() Query {
	return Query{
		Name:        "anomaly_summary",
		Description: "Anomaly counts by type and risk level",
		SQL: `
SELECT
    anomaly_type,
    risk_level,
    COUNT(*) AS anomaly_count,
    AVG(anomaly_score) AS avg_anomaly_score,
    MIN(anomaly_score) AS min_score,
    MAX(anomaly_score) AS max_score
FROM nonprofit_anomalies
WHERE is_anomalous = 1
GROUP BY anomaly_type, risk_level
ORDER BY anomaly_count DESC`,
	}
}

// DataQualityOverview profiles organizations per data-quality tier with
// presence percentages for the mission/financial/impact flags. Tiers order
// high, medium, low, then anything else.
func DataQualityOverview() Query {
	return Query{
		Name:        "data_quality_overview",
		Description: "Organization profile per data-quality tier",
		SQL: `
SELECT
    data_quality,
    COUNT(*) AS org_count,
    AVG(confidence_score) AS avg_confidence,
    SUM(CASE WHEN has_mission = 1 THEN 1 ELSE 0 END) AS orgs_with_mission,
    SUM(CASE WHEN has_financial = 1 THEN 1 ELSE 0 END) AS orgs_with_financial,
    SUM(CASE WHEN has_impact = 1 THEN 1 ELSE 0 END) AS orgs_with_impact,
    ROUND(AVG(CASE WHEN has_mission = 1 THEN 1.0 ELSE 0.0 END) * 100, 2) AS mission_pct,
    ROUND(AVG(CASE WHEN has_financial = 1 THEN 1.0 ELSE 0.0 END) * 100, 2) AS financial_pct,
    ROUND(AVG(CASE WHEN has_impact = 1 THEN 1.0 ELSE 0.0 END) * 100, 2) AS impact_pct
FROM nonprofit_quality
GROUP BY data_quality
ORDER BY
    CASE data_quality
        WHEN 'high' THEN 1
        WHEN 'medium' THEN 2
        WHEN 'low' THEN 3
        ELSE 4
    END`,
	}
}

// TopPerformers returns the top organizations by impact score. Quality
// scores are joined on EIN with a left outer join, so organizations without
// a quality row are kept with a NULL confidence score.
func TopPerformers(limit int) Query {
	return Query{
		Name:        "top_performers",
		Description: "Top organizations by impact score",
		SQL: `
SELECT
    nf.NAME,
    nf.STATE,
    nf.CITY,
    nf.CLASSIFICATION,
    nf.impact_score_numeric,
    nf.financial_metric,
    nf.impact_efficiency,
    nf.INCOME_AMT,
    nf.ASSET_AMT,
    nq.confidence_score
FROM non_profits_final nf
LEFT JOIN nonprofit_quality nq ON nf.EIN = nq.EIN
WHERE nf.impact_score_numeric IS NOT NULL
ORDER BY nf.impact_score_numeric DESC
LIMIT ?`,
		Args: []any{limit},
	}
}

// FundingByCategory profiles grants per opportunity category, including a
// count of grants still open on the day the query runs.
func FundingByCategory() Query {
	return Query{
		Name:        "funding_by_category",
		Description: "Grant funding profile per opportunity category",
		SQL: `
SELECT
    opportunity_category,
    COUNT(*) AS grant_count,
    AVG(award_ceiling) AS avg_award,
    MAX(award_ceiling) AS max_award,
    SUM(estimated_total_program_funding) AS total_funding_available,
    COUNT(CASE WHEN close_date >= CURRENT_DATE THEN 1 END) AS active_grants
FROM grants
WHERE opportunity_category IS NOT NULL
GROUP BY opportunity_category
ORDER BY grant_count DESC
LIMIT 15`,
	}
}

// HighRiskOrganizations lists organizations flagged anomalous at high risk,
// joined to their enriched records on EIN. Organizations without a matching
// anomaly row are dropped by the inner join.
func HighRiskOrganizations() Query {
	return Query{
		Name:        "high_risk_organizations",
		Description: "Organizations flagged anomalous at high risk",
		SQL: `
SELECT
    nf.NAME,
    nf.STATE,
    nf.CLASSIFICATION,
    nf.impact_score_numeric,
    na.anomaly_type,
    na.risk_level,
    na.anomaly_score,
    nf.INCOME_AMT,
    nf.ASSET_AMT
FROM non_profits_final nf
INNER JOIN nonprofit_anomalies na ON nf.EIN = na.EIN
WHERE na.is_anomalous = 1 AND na.risk_level = 'high'
ORDER BY na.anomaly_score DESC
LIMIT 50`,
	}
}

// GrantNonprofitMatching pairs open grants with scored organizations and
// reports, per grant, how many organizations qualify and their average
// impact. This is a coarse heuristic with no real eligibility rules: every
// scored organization counts toward every open grant.
func GrantNonprofitMatching() Query {
	return Query{
		Name:        "grant_nonprofit_matching",
		Description: "Open grants paired with eligible-organization counts",
		SQL: `
SELECT
    g.opportunity_title,
    g.agency_name,
    g.opportunity_category,
    g.award_ceiling,
    COUNT(DISTINCT nf.EIN) AS eligible_nonprofits,
    AVG(nf.impact_score_numeric) AS avg_impact_of_eligible
FROM grants g
CROSS JOIN non_profits_final nf
WHERE g.award_ceiling IS NOT NULL
  AND nf.impact_score_numeric IS NOT NULL
  AND g.close_date >= CURRENT_DATE
GROUP BY g.opportunity_id, g.opportunity_title, g.agency_name,
         g.opportunity_category, g.award_ceiling
HAVING COUNT(DISTINCT nf.EIN) > 0
ORDER BY g.award_ceiling DESC
LIMIT 20`,
	}
}

// All returns every catalog query with its default parameters.
func All() []Query {
	return []Query{
		TopGrantsByFunding(DefaultGrantLimit),
		NonprofitsByState(),
		ImpactByClassification(),
		AnomalySummary(),
		DataQualityOverview(),
		TopPerformers(DefaultPerformerLimit),
		FundingByCategory(),
		HighRiskOrganizations(),
		GrantNonprofitMatching(),
	}
}

// ByName resolves a catalog query by name. The limit applies only to the
// queries that accept one; pass 0 to use their defaults.
func ByName(name string, limit int) (Query, bool) {
	switch name {
	case "top_grants_by_funding":
		if limit <= 0 {
			limit = DefaultGrantLimit
		}
		return TopGrantsByFunding(limit), true
	case "top_performers":
		if limit <= 0 {
			limit = DefaultPerformerLimit
		}
		return TopPerformers(limit), true
	}
	for _, q := range All() {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}
