// Package core wires the serial source, the decode pipeline, the MQTT
// publisher, the record archive and the web app into a single runtime.
package core

import (
	"sync"
	"time"

	"TeleinfoBridge/internal/app"
	"TeleinfoBridge/internal/device"
	"TeleinfoBridge/internal/model"
	"TeleinfoBridge/internal/publish"
	"TeleinfoBridge/internal/store"
	"TeleinfoBridge/internal/teleinfo"
	"TeleinfoBridge/internal/util"
)

// System manages lifecycle of the bridge components. It loads configuration
// from a YAML file and constructs objects accordingly.
type System struct {
	cfg   *model.Config
	dev   *device.SerialDevice
	pub   *publish.Publisher
	store *store.Store
	app   *app.App

	stop      chan struct{}
	wg        sync.WaitGroup
	started   bool
	startLock sync.Mutex
}

// NewSystem reads the configuration at cfgPath and creates a System
// instance with every component constructed. The serial port itself is
// opened by the run loop, which owns the reopen/retry cycle.
func NewSystem(cfgPath string) (*System, error) {
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Store.Path, cfg.Store.Keep)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	s := &System{
		cfg:   cfg,
		dev:   device.NewSerialDevice(cfg.Serial.Device, cfg.Serial.Baud),
		store: st,
		app:   a,
		stop:  make(chan struct{}),
	}
	if cfg.MQTT.Broker != "" {
		s.pub = publish.NewPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.TopicPrefix)
	} else {
		util.Info("[core] no MQTT broker configured, publishing disabled")
	}
	return s, nil
}

// StartAll starts the web server and the decode loop.
func (s *System) StartAll() error {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if s.started {
		return nil
	}

	go func() {
		if err := s.app.Start(s.cfg.HTTP.Addr); err != nil {
			util.Error("[core] web server: %v", err)
		}
	}()

	s.wg.Add(1)
	go s.runLoop()

	s.started = true
	return nil
}

// runLoop opens the serial source, pulls records from the decoder and fans
// them out. When the source fails it is closed and reopened after the
// configured retry interval; the loop ends only on Stop.
func (s *System) runLoop() {
	defer s.wg.Done()
	retry := time.Duration(s.cfg.Serial.RetrySec) * time.Second

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		if err := s.dev.Open(); err != nil {
			util.Error("[core] %v, retrying in %s", err, retry)
			if !s.sleep(retry) {
				return
			}
			continue
		}
		util.Info("[core] reading TIC frames from %s", s.cfg.Serial.Device)

		dec := teleinfo.NewDecoder(s.dev, teleinfo.WithReporter(s.reportDecode))
		for {
			rec, err := dec.Next()
			if err != nil {
				select {
				case <-s.stop:
					return
				default:
				}
				util.Error("[core] serial source ended: %v", err)
				if cerr := s.dev.Close(); cerr != nil {
					util.Error("[core] closing serial: %v", cerr)
				}
				break
			}
			s.handleRecord(rec)
		}

		if !s.sleep(retry) {
			return
		}
	}
}

// handleRecord fans one decoded record out to the publisher, the archive
// and the websocket clients.
func (s *System) handleRecord(rec model.TeleinfoRecord) {
	util.Info("[core] record from meter %s (papp=%s VA)", rec.Adco, rec.Papp)
	if s.pub != nil {
		if err := s.pub.Publish(rec); err != nil {
			util.Error("[core] mqtt publish: %v", err)
		}
	}
	if err := s.store.Put(rec); err != nil {
		util.Error("[core] store: %v", err)
	}
	s.app.Broadcast(rec)
}

// reportDecode logs the decoder's recoverable errors; none of them stop the
// pipeline.
func (s *System) reportDecode(err error) {
	util.Warn("[core] %v", err)
}

// sleep waits for d, returning false when Stop was requested meanwhile.
func (s *System) sleep(d time.Duration) bool {
	select {
	case <-s.stop:
		return false
	case <-time.After(d):
		return true
	}
}

// StopAll stops all running components gracefully.
func (s *System) StopAll() {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if !s.started {
		return
	}
	close(s.stop)
	if err := s.dev.Close(); err != nil {
		util.Error("[core] closing serial: %v", err)
	}
	s.wg.Wait()
	s.app.Stop()
	if s.pub != nil {
		s.pub.Close()
	}
	if err := s.store.Close(); err != nil {
		util.Error("[core] closing store: %v", err)
	}
	s.started = false
}
