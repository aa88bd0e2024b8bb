package gacha_constants

import "time"

const BUDGET_STEP = 100 // NOTE: the budget input moves in steps of this size
const HARD_MAX_BUDGET = 10000

// Socket draws give up on loading the catalog after this long
const SOCKET_DRAW_TIMEOUT = 5 * time.Second

// Session key holding the JSON list of active categories
const ACTIVE_CATEGORIES_KEY = "active_categories"
