package lineserver

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"go-splendor/protocol"
	"go-splendor/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// maxLineSize 单行指令上限
	maxLineSize  = 4096
	drainTimeout = time.Second
)

// Server 文本行协议的 TCP 服务，每个连接一个 session
type Server struct {
	lobby *session.Lobby
	log   *zap.Logger

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

func New(lobby *session.Lobby, log *zap.Logger) *Server {
	return &Server{lobby: lobby, log: log, conns: make(map[net.Conn]struct{})}
}

// ListenAndServe 监听 addr，ctx 取消后关闭
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	s.log.Info("✅ 文本协议服务已启动", zap.String("addr", ln.Addr().String()))
	return s.Serve(ctx, ln)
}

// Serve 在已有 listener 上接受连接，直到 ctx 取消
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
		s.closeAll()
	}()
	defer s.wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.track(conn, true)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.track(conn, false)
			s.handleConn(conn)
		}()
	}
}

func (s *Server) track(conn net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

type lineSender struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineSender) Send(msg session.Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return protocol.Write(l.w, msg)
}

// drain 关闭前读掉未读数据，避免 RST 吞掉刚发出的回复
func drain(conn net.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(drainTimeout))
	_, _ = io.Copy(io.Discard, io.LimitReader(conn, maxLineSize))
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	sender := &lineSender{w: conn}
	sess := session.NewSession(uuid.NewString(), s.lobby, sender)
	defer sess.Close()

	log := s.log.With(zap.String("session", sess.ID()), zap.String("remote", conn.RemoteAddr().String()))
	log.Info("🔌 文本连接已建立")

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 512), maxLineSize)
	for scanner.Scan() {
		cmd, err := protocol.Parse(scanner.Text())
		if err != nil {
			_ = sender.Send(session.Message{Type: session.MsgResult, Error: session.UserMessage(err)})
			continue
		}
		sess.Handle(cmd)
		if cmd.Type == session.CmdQuit {
			break
		}
	}
	err := scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		// 扫描器无法越过超长行，回复后断开
		_ = sender.Send(session.Message{Type: session.MsgResult, Error: "Line too long."})
		drain(conn)
	}
	if err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warn("⚠️ 读取失败", zap.Error(err))
	}
	log.Info("📴 文本连接已断开")
}
