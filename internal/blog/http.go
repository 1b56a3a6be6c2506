package blog

import (
	"net"
	"net/http"
	"time"
)

var httpTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 60 * time.Second,
	}).DialContext,
	MaxIdleConns:        10,
	MaxIdleConnsPerHost: 2,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// Generation transcribes the video and calls a language model, which is slow.
var httpClient = &http.Client{
	Transport: httpTransport,
	Timeout:   3 * time.Minute,
}
