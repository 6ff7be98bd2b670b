package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/haierkeys/bookmark-service/pkg/fileurl"
	"github.com/haierkeys/bookmark-service/pkg/util"

	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultConfigKeyPlaceholder 内嵌默认配置中的密钥占位符，首次生成配置时替换为随机值
const defaultConfigKeyPlaceholder = "bookmark-service-Auth-Token"

type runFlags struct {
	dir     string // Project root directory // 项目根目录
	port    string // Startup port // 启动端口
	runMode string // Startup mode // 启动模式
	config  string // Specified configuration file path // 指定要使用的配置文件路径
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port] [-m mode]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				err := os.Chdir(runEnv.dir)
				if err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			if len(runEnv.config) <= 0 {
				if fileurl.IsExist("config/config-dev.yaml") {
					runEnv.config = "config/config-dev.yaml"
				} else if fileurl.IsExist("config.yaml") {
					runEnv.config = "config.yaml"
				} else {
					runEnv.config = "config/config.yaml"
				}
			}

			created, err := ensureConfigFile(runEnv.config, configDefault)
			if err != nil {
				bootstrapLogger.Error("config file auto create error", zap.Error(err))
				return
			}
			if created {
				bootstrapLogger.Info("config file auto create successfully", zap.String("path", runEnv.config))
			}

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				return
			}

			reload := make(chan struct{}, 1)
			go watchConfig(runEnv.config, reload)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			for {
				select {
				case <-quit:
					s.logger.Info("Received shutdown signal, initiating graceful shutdown...")
					s.sc.SendCloseSignal(nil)

				case <-reload:
					s.logger.Info("config changed, restarting service", zap.String("config", runEnv.config))
					s.sc.SendCloseSignal(nil)
					if err := s.sc.WaitClosed(); err != nil {
						s.logger.Warn("previous service closed with error", zap.Error(err))
					}

					// Re-initialize server
					// 重新初始化 server
					next, err := NewServer(runEnv)
					if err != nil {
						bootstrapLogger.Error("service restart err", zap.Error(err))
						return
					}
					s = next
					continue

				case <-s.sc.CloseSignal():
					// 服务自身异常退出（例如端口被占用）
				}
				break
			}

			// Wait for all shutdown handlers to complete (including App Container graceful shutdown)
			// 等待所有关闭处理器完成（包括 App Container 的优雅关闭）
			if err := s.sc.WaitClosed(); err != nil {
				s.logger.Error("Shutdown completed with error", zap.Error(err))
			} else {
				s.logger.Info("Service has been shut down gracefully.")
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}

// ensureConfigFile 配置文件不存在时写入默认配置，密钥占位符替换为随机值
func ensureConfigFile(path, content string) (bool, error) {
	if fileurl.IsExist(path) {
		return false, nil
	}

	bootstrapLogger.Warn("config file not found, creating default config", zap.String("path", path))

	content = strings.Replace(content, defaultConfigKeyPlaceholder, util.GetRandomString(32), 1)

	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return false, errors.Wrap(err, "create config dir")
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, errors.Wrap(err, "write config file")
	}
	return true, nil
}

// watchConfig 监听配置文件，写入后通知 reload
func watchConfig(path string, reload chan<- struct{}) {
	w := watcher.New()

	// Set MaxEvents to 1 to receive at most 1 event in each listening cycle
	// 将 SetMaxEvents 设置为 1，以便在每个监听周期中至多接收 1 个事件
	w.SetMaxEvents(1)

	// Only notify write events.
	// 只通知写入事件。
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				bootstrapLogger.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
				select {
				case reload <- struct{}{}:
				default:
					// 已有待处理的重载
				}
			case err := <-w.Error:
				bootstrapLogger.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				bootstrapLogger.Info("config watcher closed")
				return
			}
		}
	}()

	// 监听 config.yaml 文件
	if err := w.Add(path); err != nil {
		bootstrapLogger.Error("config watcher file error", zap.Error(err))
		return
	}

	if err := w.Start(time.Second * 5); err != nil {
		bootstrapLogger.Error("config watcher start error", zap.Error(err))
	}
}
