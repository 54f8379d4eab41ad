package utils

import (
	"crypto/tls"
	"net"
	"net/http"
	"os"

	"scriptgen/config"
)

var (
	// SharedHTTPClient 共享的HTTP客户端实例，所有上游请求复用连接池
	// 超时由调用方的 context 控制
	SharedHTTPClient *http.Client
)

func init() {
	SharedHTTPClient = buildSharedHTTPClient()
}

// shouldSkipTLSVerify 仅在显式设置 INSECURE_SKIP_VERIFY 时跳过证书验证
func shouldSkipTLSVerify() bool {
	return GetEnvBool("INSECURE_SKIP_VERIFY")
}

func buildSharedHTTPClient() *http.Client {
	skipTLS := shouldSkipTLSVerify()
	if skipTLS {
		os.Stderr.WriteString("[WARNING] TLS证书验证已禁用 - 仅适用于开发/调试环境\n")
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   config.HTTPClientDialTimeout,
			KeepAlive: config.HTTPClientKeepAlive,
		}).DialContext,

		TLSHandshakeTimeout: config.HTTPClientTLSHandshakeTimeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipTLS,
			MinVersion:         tls.VersionTLS12,
		},
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	return &http.Client{Transport: transport}
}
