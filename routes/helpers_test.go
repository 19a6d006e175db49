// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
)

const testDataset = `Parâmetro,Pré-Operatório,Pós-Operatório (24h),Pós-Operatório (48h),Pós-Operatório (72h)
Creatinina (mg/dL),0.9,1.1,1.3,1.5
pH (Gasometria),7.25,7.31,7.36,7.40
Lactato (mmol/L),4.5,,,
Drenagem (mL),300,200,150,90
`

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type dashboardTemplateStub struct {
	rw     http.ResponseWriter
	called bool
	name   string
}

func (s *dashboardTemplateStub) HTML(status int, name string) {
	s.called = true
	s.name = name
	s.rw.WriteHeader(status)
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}

	return path
}

func newAPITestApp(d *Dashboard, origins ...string) *flamego.Flame {
	f := flamego.New()
	f.Use(RequestLogger)
	RegisterAPI(f, d, origins)

	return f
}

// newPagesTestApp mounts the page handlers with stubbed session and
// template services. CSRF validation is left to the csrf package.
func newPagesTestApp(d *Dashboard, s session.Session, stub *dashboardTemplateStub, data template.Data) *flamego.Flame {
	f := flamego.New()
	f.Use(func(c flamego.Context) {
		stub.rw = c.ResponseWriter()
		c.MapTo(s, (*session.Session)(nil))
		c.MapTo(stub, (*template.Template)(nil))
		c.Map(data)
		c.Next()
	})

	f.Get("/", d.Home)
	f.Post("/upload", LimitRequestBody(maxUploadBytes), d.Upload)

	return f
}
