// Package config loads simulator configuration from YAML and fills in the
// defaults documented in spec.md §6 "Configuration". The split between the
// raw decoded Config and a derived RuntimeConfig mirrors the teacher
// repo's utils/config package: decode first, validate/default second.
package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// TieBreak 记录路由与准入阶段使用的排序策略名，目前均为固定策略，
// 字段的存在是为了让配置文件显式记录这一行为（参见spec.md §6）。
type TieBreak struct {
	Route string `yaml:"route"` // 固定为 "by_dest_id_asc"
	Admit string `yaml:"admit"` // 固定为 "by_road_then_car"
}

// Config 是从YAML文件解码出的原始配置。
//
// 功能：对应spec.md §6所列的可配置项。
// 说明：除此以外的一切行为均由输入记录（车辆/道路/路口）推导得到。
type Config struct {
	DeadlockFatal        *bool    `yaml:"deadlock_fatal,omitempty"`
	AdmissionRatePerTick int      `yaml:"admission_rate_per_tick,omitempty"`
	TieBreak             TieBreak `yaml:"tie_break,omitempty"`
	LogLevel             string   `yaml:"log_level,omitempty"`

	// Snapshot 控制可选的快照落盘（见 persistence 包）。
	Snapshot SnapshotConfig `yaml:"snapshot,omitempty"`
}

// SnapshotConfig 控制世界状态快照持久化的行为。
type SnapshotConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	MongoURI string `yaml:"mongo_uri,omitempty"`
	Database string `yaml:"database,omitempty"`
	Every    int    `yaml:"every_ticks,omitempty"` // 每隔多少tick快照一次，默认1
}

// RuntimeConfig 是填充完默认值、可直接被调度器使用的配置。
type RuntimeConfig struct {
	DeadlockFatal        bool
	AdmissionRatePerTick int
	TieBreak             TieBreak
	LogLevel             string
	Snapshot             SnapshotConfig
}

// Load 从path读取并解析YAML配置文件。
func Load(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}

// NewRuntimeConfig 用默认值填充原始配置，得到可直接使用的RuntimeConfig。
//
// 算法说明：
// 1. deadlock_fatal 默认为true；
// 2. admission_rate_per_tick 默认为1（每tick最多放行1辆车进入准入）；
// 3. tie_break 固定为 {by_dest_id_asc, by_road_then_car}，这是调度算法
//    本身的不变量，配置文件中的值（若有）仅用于记录，不影响行为；
// 4. snapshot.every_ticks 默认为1。
func NewRuntimeConfig(c Config) RuntimeConfig {
	rc := RuntimeConfig{
		DeadlockFatal:        true,
		AdmissionRatePerTick: 1,
		TieBreak: TieBreak{
			Route: "by_dest_id_asc",
			Admit: "by_road_then_car",
		},
		LogLevel: "info",
		Snapshot: c.Snapshot,
	}
	if c.DeadlockFatal != nil {
		rc.DeadlockFatal = *c.DeadlockFatal
	}
	if c.AdmissionRatePerTick > 0 {
		rc.AdmissionRatePerTick = c.AdmissionRatePerTick
	}
	if c.LogLevel != "" {
		rc.LogLevel = c.LogLevel
	}
	if rc.Snapshot.Every <= 0 {
		rc.Snapshot.Every = 1
	}
	return rc
}

// Default 返回未从文件加载配置时使用的默认RuntimeConfig。
func Default() RuntimeConfig {
	return NewRuntimeConfig(Config{})
}
