// @title CareerQuest 门户 API
// @version 1.0
// @description CareerQuest 职业探索测评的门户服务，管理浏览器会话并代理外部分析后端。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"careerquest_portal/internal/app"
	"careerquest_portal/internal/config"
	"careerquest_portal/pkg/logger"
	"flag"
	"log"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	checkOnly := flag.Bool("check-config", false, "只校验配置文件，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *checkOnly {
		log.Printf("配置校验通过: oracle=%s session.store=%s", cfg.Oracle.BaseURL, cfg.Session.Store)
		return
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer logger.Log.Sync()

	application.Run()
}
