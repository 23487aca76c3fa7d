package render

// The dashboard renders in a single fixed locale (ja-JP).
const (
	dateLayout = "2006年1月2日 15:04"

	labelNoData          = "-"
	labelNoMatches       = "フィルタに一致するニュースが見つかりません。"
	labelNoSummaries     = "サマリーデータが利用できません。"
	labelNoContent       = "コンテンツが利用できません。"
	labelHeadlines       = "主要見出し"
	labelNewsCountFormat = "%d件のニュースを分析"
	labelDaysAgoFormat   = "%d日前"
	labelHoursAgoFormat  = "%d時間前"
	labelWithinHour      = "1時間以内"

	// LoadFailedMessage is shown in place of the timeline when the feed cannot be loaded.
	LoadFailedMessage = "データの読み込みに失敗しました。"
)
