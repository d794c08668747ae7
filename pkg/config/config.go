package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 汇总服务需要的全部外部配置
// 优先级：环境变量 > .env文件 > 默认值
type Config struct {
	ListenAddr string
	LogFile    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	OSSEndpoint        string
	OSSBucket          string
	OSSAccessKeyID     string
	OSSAccessKeySecret string
}

func setDefaults() {
	viper.SetDefault("listen.addr", ":8080")
	viper.SetDefault("log.file", "vega_stream.log")

	viper.SetDefault("db.user", "root")
	viper.SetDefault("db.password", "")
	viper.SetDefault("db.host", "127.0.0.1")
	viper.SetDefault("db.port", "3306")
	viper.SetDefault("db.name", "vega_stream")

	viper.SetDefault("oss.endpoint", "oss-cn-hangzhou.aliyuncs.com")
	viper.SetDefault("oss.bucket", "vega-stream")
	viper.SetDefault("oss.access_key_id", "")
	viper.SetDefault("oss.access_key_secret", "")
}

// Load 读取配置：先加载.env（没有也无所谓），再让viper用环境变量覆盖默认值
// viper的key是点分层级，对应的环境变量是下划线大写，比如 db.host -> DB_HOST
func Load() (*Config, error) {
	// .env只是开发期的便利，线上直接注入环境变量
	_ = godotenv.Load()

	setDefaults()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfg := &Config{
		ListenAddr: viper.GetString("listen.addr"),
		LogFile:    viper.GetString("log.file"),

		DBUser:     viper.GetString("db.user"),
		DBPassword: viper.GetString("db.password"),
		DBHost:     viper.GetString("db.host"),
		DBPort:     viper.GetString("db.port"),
		DBName:     viper.GetString("db.name"),

		OSSEndpoint:        viper.GetString("oss.endpoint"),
		OSSBucket:          viper.GetString("oss.bucket"),
		OSSAccessKeyID:     viper.GetString("oss.access_key_id"),
		OSSAccessKeySecret: viper.GetString("oss.access_key_secret"),
	}
	return cfg, nil
}

// DSN 拼出gorm的mysql数据源名称
// 用户名:密码@网络协议(地址:端口号)/数据库名?charset=字符集&parseTime=是否解析时间&loc=时区
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
