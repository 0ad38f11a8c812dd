package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lifeline-api/databases"
)

// DatabaseHelper is a mock type for the DatabaseHelper type
type DatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function with given fields:
func (_m *DatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()
	r0, _ := ret.Get(0).(databases.ClientHelper)
	return r0
}

// Collection provides a mock function with given fields: name
func (_m *DatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)
	r0, _ := ret.Get(0).(databases.CollectionHelper)
	return r0
}

// ClientHelper is a mock type for the ClientHelper type
type ClientHelper struct {
	mock.Mock
}

// Database provides a mock function with given fields: _a0
func (_m *ClientHelper) Database(_a0 string) databases.DatabaseHelper {
	ret := _m.Called(_a0)
	r0, _ := ret.Get(0).(databases.DatabaseHelper)
	return r0
}

// Connect provides a mock function with given fields: ctx
func (_m *ClientHelper) Connect(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

// Disconnect provides a mock function with given fields: ctx
func (_m *ClientHelper) Disconnect(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

// variadic flattens optional arguments the way mockery does, so
// expectations are written with one matcher per argument actually passed.
func variadic[T any](fixed []interface{}, opts []T) []interface{} {
	for _, o := range opts {
		fixed = append(fixed, o)
	}
	return fixed
}

// CollectionHelper is a mock type for the CollectionHelper type
type CollectionHelper struct {
	mock.Mock
}

// FindOne provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) FindOne(_a0 context.Context, _a1 interface{}, _a2 ...*options.FindOneOptions) databases.SingleResultHelper {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)
	r0, _ := ret.Get(0).(databases.SingleResultHelper)
	return r0
}

// Find provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) Find(_a0 context.Context, _a1 interface{}, _a2 ...*options.FindOptions) (databases.CursorHelper, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)
	r0, _ := ret.Get(0).(databases.CursorHelper)
	return r0, ret.Error(1)
}

// InsertOne provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) InsertOne(_a0 context.Context, _a1 interface{}, _a2 ...*options.InsertOneOptions) (databases.InsertOneResultHelper, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)
	r0, _ := ret.Get(0).(databases.InsertOneResultHelper)
	return r0, ret.Error(1)
}

// UpdateOne provides a mock function with given fields: _a0, _a1, _a2, _a3
func (_m *CollectionHelper) UpdateOne(_a0 context.Context, _a1 interface{}, _a2 interface{}, _a3 ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1, _a2}, _a3)...)
	r0, _ := ret.Get(0).(*mongo.UpdateResult)
	return r0, ret.Error(1)
}

// DeleteOne provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) DeleteOne(_a0 context.Context, _a1 interface{}, _a2 ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)
	r0, _ := ret.Get(0).(*mongo.DeleteResult)
	return r0, ret.Error(1)
}

// CountDocuments provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) CountDocuments(_a0 context.Context, _a1 interface{}, _a2 ...*options.CountOptions) (int64, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)
	r0, _ := ret.Get(0).(int64)
	return r0, ret.Error(1)
}

// Aggregate provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) Aggregate(_a0 context.Context, _a1 interface{}, _a2 ...*options.AggregateOptions) (databases.CursorHelper, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)
	r0, _ := ret.Get(0).(databases.CursorHelper)
	return r0, ret.Error(1)
}

// Watch provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) Watch(_a0 context.Context, _a1 interface{}, _a2 ...*options.ChangeStreamOptions) (databases.ChangeStreamHelper, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)
	r0, _ := ret.Get(0).(databases.ChangeStreamHelper)
	return r0, ret.Error(1)
}

// SingleResultHelper is a mock type for the SingleResultHelper type
type SingleResultHelper struct {
	mock.Mock
}

// Decode provides a mock function with given fields: v
func (_m *SingleResultHelper) Decode(v interface{}) error {
	return _m.Called(v).Error(0)
}

// CursorHelper is a mock type for the CursorHelper type
type CursorHelper struct {
	mock.Mock
}

// Decode provides a mock function with given fields: v
func (_m *CursorHelper) Decode(v interface{}) error {
	return _m.Called(v).Error(0)
}

// InsertOneResultHelper is a mock type for the InsertOneResultHelper type
type InsertOneResultHelper struct {
	mock.Mock
}

// Decode provides a mock function with given fields:
func (_m *InsertOneResultHelper) Decode() interface{} {
	return _m.Called().Get(0)
}

// ChangeStreamHelper is a mock type for the ChangeStreamHelper type
type ChangeStreamHelper struct {
	mock.Mock
}

// Next provides a mock function with given fields: ctx
func (_m *ChangeStreamHelper) Next(ctx context.Context) bool {
	return _m.Called(ctx).Bool(0)
}

// Decode provides a mock function with given fields: v
func (_m *ChangeStreamHelper) Decode(v interface{}) error {
	return _m.Called(v).Error(0)
}

// Err provides a mock function with given fields:
func (_m *ChangeStreamHelper) Err() error {
	return _m.Called().Error(0)
}

// Close provides a mock function with given fields: ctx
func (_m *ChangeStreamHelper) Close(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}
