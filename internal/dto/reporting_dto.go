package dto

// DashboardParams scopes the dashboard to a month and optionally a route and collector.
type DashboardParams struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
	Area  string `form:"area"`
	User  string `form:"user"`
}

// RankingParams selects a bi-monthly period.
type RankingParams struct {
	Year   int `form:"year" binding:"omitempty,min=2000"`
	Period int `form:"period" binding:"omitempty,min=1,max=6"`
}

// CollectionSheetParams selects a route and collection day.
type CollectionSheetParams struct {
	Area string `form:"area" binding:"required"`
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// AuditLogParams limits the audit listing.
type AuditLogParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// DateParams selects a single day; empty means today.
type DateParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// AreaParams optionally scopes a report to one route.
type AreaParams struct {
	Area string `form:"area"`
}

// MonthParams selects a required month.
type MonthParams struct {
	Month string `form:"month" binding:"required,datetime=2006-01"`
}
