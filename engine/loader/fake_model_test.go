package loader

import (
	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
)

type fakeModel struct {
	released int
}

var _ model.Model = &fakeModel{}

func (m *fakeModel) Name() string                                  { return "fake" }
func (m *fakeModel) Label() string                                 { return "fake" }
func (m *fakeModel) Parts() []model.Part                           { return nil }
func (m *fakeModel) ImportedMaterials() []common.ImportedMaterial { return nil }
func (m *fakeModel) Bounds() ([3]float32, [3]float32)             { return [3]float32{}, [3]float32{} }
func (m *fakeModel) Release()                                      { m.released++ }
