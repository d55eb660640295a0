package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameDrawsPerformed   = "draws_performed_total"
	MetricNameItemsDrawn       = "items_drawn_total"
	MetricNameItemsCrafted     = "items_crafted_total"
	MetricNameItemsEnchanted   = "items_enchanted_total"
	MetricNameItemsSold        = "items_sold_total"
	MetricNameItemsBought      = "items_bought_total"
	MetricNameItemsConsumed    = "items_consumed_total"
	MetricNameEffectsTriggered = "effects_triggered_total"
	MetricNameMoneyEarned      = "money_earned_total"
	MetricNameMoneySpent       = "money_spent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextDrawsPerformed   = "Total number of draw operations per table"
	HelpTextItemsDrawn       = "Total number of items drawn per table"
	HelpTextItemsCrafted     = "Total number of items crafted"
	HelpTextItemsEnchanted   = "Total number of monetary enchantments applied"
	HelpTextItemsSold        = "Total number of items sold"
	HelpTextItemsBought      = "Total number of items bought from the shop"
	HelpTextItemsConsumed    = "Total number of consumable items used"
	HelpTextEffectsTriggered = "Total number of one-shot consumable effects triggered"
	HelpTextMoneyEarned      = "Total currency credited to players"
	HelpTextMoneySpent       = "Total currency debited from players"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelTable  = "table"
	LabelItem   = "item"
	LabelKind   = "kind"
	LabelSource = "source"
)

// Money flow sources
const (
	SourceDraw    = "draw"
	SourceSell    = "sell"
	SourceBuy     = "buy"
	SourceCraft   = "craft"
	SourceEnchant = "enchant"
	SourceAdmin   = "admin"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
