// Package main 提供 swarm-echo 命令行入口
//
// 使用默认栈监听或拨号，并在一个流上回显数据：
//
//	swarm-echo -listen /ip4/127.0.0.1/tcp/4001
//	swarm-echo -dial /ip4/127.0.0.1/tcp/4001 -msg hello
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	swarm "github.com/dep2p/go-swarm"
	"github.com/dep2p/go-swarm/pkg/lib/log"
	"github.com/dep2p/go-swarm/pkg/types"
)

var logger = log.Logger("swarm/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	listenAddr = flag.String("listen", "", "监听地址，例如 /ip4/0.0.0.0/tcp/4001")
	dialAddr   = flag.String("dial", "", "拨号地址")
	message    = flag.String("msg", "hello", "拨号方发送的消息")
	configFile = flag.String("config", "", "JSON 配置文件路径")
	plaintext  = flag.Bool("plaintext", false, "同时启用明文升级（仅测试）")
	websocket  = flag.Bool("ws", false, "启用 WebSocket 传输")
	timeout    = flag.Duration("timeout", 30*time.Second, "拨号方整体超时")
	verbose    = flag.Bool("v", false, "输出 debug 日志")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if (*listenAddr == "") == (*dialAddr == "") {
		flag.Usage()
		return errors.New("必须且只能指定 -listen 或 -dial 之一")
	}
	if *verbose {
		log.SetLevel(log.LevelDebug)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s, err := swarm.New(ctx, buildOptions()...)
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = s.Close() }()

	if *listenAddr != "" {
		return serve(ctx, s, *listenAddr)
	}
	return dial(ctx, s, *dialAddr)
}

// buildOptions 构建选项，配置文件优先，命令行开关在其上覆盖
func buildOptions() []swarm.Option {
	var opts []swarm.Option
	if *configFile != "" {
		opts = append(opts, swarm.WithConfigFile(*configFile))
	}
	if *plaintext {
		opts = append(opts, swarm.WithPlaintext(true))
	}
	if *websocket {
		opts = append(opts, swarm.WithTransports(true, true, true, true))
	}
	return opts
}

// serve 持续接受连接，每个连接回显其第一个流
func serve(ctx context.Context, s *swarm.Swarm, addr string) error {
	l, err := s.Listen(addr)
	if err != nil {
		return fmt.Errorf("监听失败: %w", err)
	}
	fmt.Printf("正在监听 %s，按 Ctrl+C 退出\n", l.Multiaddr())

	for {
		conn, err := l.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, types.ErrListenerClosed) {
				return nil
			}
			if types.IsItemError(err) {
				logger.Warn("入站连接升级失败", "error", err)
				continue
			}
			return err
		}

		go func() {
			defer conn.Close()

			stream, err := conn.AcceptStream(ctx)
			if err != nil {
				logger.Debug("接受流失败", "error", err)
				return
			}
			defer stream.Close()

			n, err := io.Copy(stream, stream)
			logger.Info("回显完成", "bytes", n, "error", err)
		}()
	}
}

// dial 发送消息并打印回显
func dial(ctx context.Context, s *swarm.Swarm, addr string) error {
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	conn, err := s.Dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("拨号失败: %w", err)
	}
	defer conn.Close()

	stream, err := conn.OpenStream(ctx)
	if err != nil {
		return fmt.Errorf("打开流失败: %w", err)
	}
	defer stream.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetDeadline(deadline)
	}
	if _, err := stream.Write([]byte(*message)); err != nil {
		return err
	}

	buf := make([]byte, len(*message))
	if _, err := io.ReadFull(stream, buf); err != nil {
		return fmt.Errorf("读取回显失败: %w", err)
	}
	fmt.Println(string(buf))
	return nil
}
