package dashboard

// Control ids the controller binds handlers to. They double as the element ids
// of the rendered page.
const (
	ControlDate    = "dateFilter"
	ControlSource  = "sourceFilter"
	ControlCompany = "companyFilter"
	ControlKeyword = "keywordSearch"
	ControlClear   = "clearFilters"
)

// Display regions of the rendered page.
const (
	RegionNewsTimeline    = "newsTimeline"
	RegionSummaries       = "summaryContainer"
	RegionTotalNews       = "totalNews"
	RegionRecentUpdates   = "recentUpdates"
	RegionUniqueCompanies = "uniqueCompanies"
	RegionLastUpdate      = "lastUpdate"
)

// QueryParams maps request query parameters onto filter controls, in dispatch order.
var QueryParams = []struct {
	Param   string
	Control string
}{
	{Param: "date", Control: ControlDate},
	{Param: "source", Control: ControlSource},
	{Param: "company", Control: ControlCompany},
	{Param: "keyword", Control: ControlKeyword},
}
