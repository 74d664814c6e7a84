package main

import "sync"

type Config struct {
	SearchMinDepth    int  `json:"search_min_depth"`
	SearchMaxDepth    int  `json:"search_max_depth"`
	WeightACeiling    int  `json:"weight_a_ceiling"`
	WeightBCeiling    int  `json:"weight_b_ceiling"`
	WeightSumBudget   int  `json:"weight_sum_budget"`
	GoodSumThreshold  int  `json:"good_sum_threshold"`
	ExploreThrottleMs int  `json:"explore_throttle_ms"`
	WsPingIntervalSec int  `json:"ws_ping_interval_sec"`
	LogSearchStats    bool `json:"log_search_stats"`
	QueueEnabled      bool `json:"queue_enabled"`
	QueueWorkers      int  `json:"queue_workers"`
	QueueLimit        int  `json:"queue_limit"`
}

func DefaultConfig() Config {
	return Config{
		// Depth bounds for the iterative deepening search. These are
		// practical cutoffs inherited from the puzzle, not proven
		// sufficient: paths longer than SearchMaxDepth moves are
		// never considered.
		SearchMinDepth: 4,
		SearchMaxDepth: 11,

		// Enumeration ceilings for the weight sweep. Ceilings are
		// exclusive; triples with A >= 20, B >= 30 or A+B+C >= 50
		// are outside the searched space.
		WeightACeiling:  20,
		WeightBCeiling:  30,
		WeightSumBudget: 50,

		// Solutions with a sum under this are reported fully
		// formatted in progress events, not just as a sum.
		GoodSumThreshold: 20,

		// Throttle for live exploration snapshots pushed to /ws/explore.
		ExploreThrottleMs: 50,

		// Idle ping period on websocket connections, so proxies don't
		// drop quiet solver sessions.
		WsPingIntervalSec: 30,

		LogSearchStats: false, // turn ON temporarily to tune; disable later

		QueueEnabled: true,
		QueueWorkers: 1,
		QueueLimit:   64,
	}
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
