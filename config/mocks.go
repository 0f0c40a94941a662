package config

import (
	"github.com/gatortrader/gatortrader-api/log"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type ConfigMock struct {
	mock.Mock
}

func NewConfigMock() *ConfigMock {
	return &ConfigMock{}
}

func (o *ConfigMock) Default() *ConfigMock {
	o.On("SupportedOperations").Return(AllOperations)
	o.On("DefaultPageSize").Return(25)
	o.On("Naming").Return(NewDefaultNaming())
	o.On("Logger").Return(log.NewZapLogger(zap.NewExample()))
	return o
}

func (o *ConfigMock) SupportedOperations() Operations {
	args := o.Called()
	return args.Get(0).(Operations)
}

func (o *ConfigMock) DefaultPageSize() int {
	args := o.Called()
	return args.Int(0)
}

func (o *ConfigMock) Naming() NamingConvention {
	args := o.Called()
	return args.Get(0).(NamingConvention)
}

func (o *ConfigMock) Logger() log.Logger {
	args := o.Called()
	return args.Get(0).(log.Logger)
}
