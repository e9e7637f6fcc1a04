package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/sessionauth/internal/model"
)

// TLSListener serves HTTPS. Session cookies should be marked Secure when it is used.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
}

// NewTLSListener creates a TLSListener for the given certificate and private key files.
func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

// Listen loads the key pair and opens a TLS listener on addr.
// The key pair is read on every call so a restart picks up rotated certificates.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	}
	return tls.Listen(protocol, addr, tlsConfig)
}

// PlainListener serves unencrypted HTTP, for local use or behind a terminating proxy.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}

// NewSecurityLayer picks the listener matching the HTTPS setting.
func NewSecurityLayer(enableHTTPS bool, certFileName, privateKeyFileName string) model.SecurityLayer {
	if enableHTTPS {
		return NewTLSListener(certFileName, privateKeyFileName)
	}
	return NewPlainListener()
}
