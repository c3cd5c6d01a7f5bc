package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/rawbytedev/yoke"
	"github.com/rawbytedev/yoke/pkg/bufdecode"
	"github.com/rawbytedev/yoke/pkg/fractus"
	"github.com/rawbytedev/yoke/pkg/provider"
)

type localeInfo struct {
	Name     string
	Script   string
	Region   string
	Variants []string
}

type localeInfoMarker struct{}

func (localeInfoMarker) Yokeable(localeInfo) {}

type scriptMarker struct{}

func (scriptMarker) Yokeable(string) {}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.DebugLevel)
	provider.SetLogger(log)
	bufdecode.SetLogger(log)

	// what a loader would read from disk or the network
	data, err := fractus.Marshal(localeInfo{
		Name: "Serbian (Latin)", Script: "Latn", Region: "RS", Variants: []string{"ekavsk"},
	})
	if err != nil {
		log.Fatal(err)
	}
	locale := language.MustParse("sr-Latn-RS")
	resp := &provider.DataResponse[provider.BufferMarker, []byte]{
		Metadata: provider.DataResponseMetadata{Locale: &locale, BufferFormat: provider.BufferFormatFractus},
		Payload:  provider.FromOwnedBuffer(data),
	}

	decoded, err := bufdecode.DeserializeResponse[localeInfoMarker, localeInfo](resp, bufdecode.Options{UnsafeStrings: true})
	if err != nil {
		log.Fatal(err)
	}
	md, info, err := decoded.TakeMetadataAndPayload()
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(logrus.Fields{
		"locale":    md.Locale.String(),
		"format":    md.BufferFormat.String(),
		"name":      info.Get().Name,
		"cart_refs": info.Cart().Refs(),
		"sync_cart": yoke.SyncCart,
	}).Info("decoded locale info")

	script := provider.MapProjectCloned[scriptMarker](info, func(l localeInfo) string { return l.Script })
	log.WithFields(logrus.Fields{
		"script":      script.Get(),
		"shares_cart": script.Cart().Same(info.Cart()),
		"cart_refs":   info.Cart().Refs(),
	}).Info("projected script")

	info.WithMut(func(l *localeInfo) { l.Variants = append(l.Variants, "ijekavsk") })
	log.WithField("variants", info.Get().Variants).Info("mutated copy")

	if _, err := info.TryUnwrapOwned(); err != nil {
		log.WithError(err).Warn("borrowed data cannot be unwrapped")
	}

	script.Release()
	info.Release()

	missing := &provider.DataResponse[provider.HelloWorldV1Marker, provider.HelloWorldV1]{Metadata: md}
	if _, err := missing.TakePayload(); err != nil {
		log.WithError(err).Warn("lookup returned no data")
	}
}
