package serverconfig

import "time"

type Config struct {
	DB         DBConfig         `yaml:"db" mapstructure:"db"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	GRPCServer GRPCServerConfig `yaml:"grpcserver" mapstructure:"grpcserver"`
	ChatServer ChatServerConfig `yaml:"chatserver" mapstructure:"chatserver"`
	Game       GameConfig       `yaml:"game" mapstructure:"game"`
	RateLimit  RateLimitConfig  `yaml:"ratelimit" mapstructure:"ratelimit"`
	Session    SessionConfig    `yaml:"session" mapstructure:"session"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Logic      LogicConfig      `yaml:"logic" mapstructure:"logic"`
	Seed       SeedConfig       `yaml:"seed" mapstructure:"seed"`
}

type DBConfig struct {
	Driver   string `yaml:"driver" mapstructure:"driver"` // mysql / sqlite
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
	// SQLitePath 仅 driver=sqlite 时生效，":memory:" 表示内存库。
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	ShowSQL    bool   `yaml:"show_sql" mapstructure:"show_sql"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// AllowOrigins 为空表示回显请求 Origin。
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
}

type GRPCServerConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host" mapstructure:"host"`
	Port    int    `yaml:"port" mapstructure:"port"`
}

type ChatServerConfig struct {
	NeedSecret bool `yaml:"need_secret" mapstructure:"need_secret"`
	// Store 聊天消息存储：mysql（默认）/ mongo。
	Store          string `yaml:"store" mapstructure:"store"`
	SocketHistory  int    `yaml:"socket_history" mapstructure:"socket_history"`
	RestHistory    int    `yaml:"rest_history" mapstructure:"rest_history"`
	MaxContentSize int    `yaml:"max_content_size" mapstructure:"max_content_size"`
}

type GameConfig struct {
	PollViewport      int `yaml:"poll_viewport" mapstructure:"poll_viewport"`
	DefaultViewport   int `yaml:"default_viewport" mapstructure:"default_viewport"`
	MaxViewport       int `yaml:"max_viewport" mapstructure:"max_viewport"`
	ActorIdleSeconds  int `yaml:"actor_idle_seconds" mapstructure:"actor_idle_seconds"`
	ActorAskTimeoutMs int `yaml:"actor_ask_timeout_ms" mapstructure:"actor_ask_timeout_ms"`
}

func (g GameConfig) ActorIdle() time.Duration {
	if g.ActorIdleSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(g.ActorIdleSeconds) * time.Second
}

func (g GameConfig) ActorAskTimeout() time.Duration {
	if g.ActorAskTimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(g.ActorAskTimeoutMs) * time.Millisecond
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" mapstructure:"enabled"`
	RPS     float64 `yaml:"rps" mapstructure:"rps"`
	Burst   int     `yaml:"burst" mapstructure:"burst"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
	Secure     bool   `yaml:"secure" mapstructure:"secure"`
	TTLHours   int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
	JWTSecret  string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type LogicConfig struct {
	CatalogDir string `yaml:"catalog_dir" mapstructure:"catalog_dir"`
	ServerID   int    `yaml:"server_id" mapstructure:"server_id"`
}

type SeedConfig struct {
	KingdomName string `yaml:"kingdom_name" mapstructure:"kingdom_name"`
	MapSize     int    `yaml:"map_size" mapstructure:"map_size"`
	MaxPlayers  int    `yaml:"max_players" mapstructure:"max_players"`
	NoiseSeed   int64  `yaml:"noise_seed" mapstructure:"noise_seed"`
	BatchSize   int    `yaml:"batch_size" mapstructure:"batch_size"`
}
