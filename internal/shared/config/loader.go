package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// mu 保护热更新时对 out 的并发写。
var mu sync.Mutex

func load(configPath string, out any, onChange ...func()) error {
	if !fileExist(configPath) {
		return fmt.Errorf("config file not exist, configPath=%v", configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Println("配置文件变更", e.Name)
		mu.Lock()
		err := v.Unmarshal(out)
		mu.Unlock()
		if err != nil {
			log.Printf("viper unmarshal change config data failed, err=%v\n", err)
			return
		}
		for _, fn := range onChange {
			fn()
		}
	})

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	mu.Lock()
	err := v.Unmarshal(out)
	mu.Unlock()
	if err != nil {
		return err
	}
	v.WatchConfig()
	return nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
