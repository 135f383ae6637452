package repository_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"allumni-network/internal/model"
	"allumni-network/internal/repository"
)

// storeSuite 两种后端共用的一致性测试
type storeSuite struct {
	suite.Suite
	open  func() repository.Store
	store repository.Store
	ctx   context.Context
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open()
}

// ── 数据构造 ──

func (s *storeSuite) insertUser(name, email string) *model.User {
	now := time.Now().UTC()
	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		AccountType:  model.AccountTypeAlumni,
		Status:       model.AccountActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := s.store.Insert(s.ctx, repository.Users, u)
	s.Require().NoError(err)
	return u
}

func (s *storeSuite) insertGroup(name string, creator int64) *model.Group {
	g := &model.Group{Name: name, CreatedBy: creator, Type: model.GroupPublic, CreatedAt: time.Now().UTC()}
	_, err := s.store.Insert(s.ctx, repository.Groups, g)
	s.Require().NoError(err)
	return g
}

func (s *storeSuite) insertMembership(groupID, userID int64) error {
	_, err := s.store.Insert(s.ctx, repository.Memberships, &model.Membership{
		GroupID: groupID, UserID: userID, Role: model.MemberRoleMember, JoinedAt: time.Now().UTC(),
	})
	return err
}

// ── 用例 ──

func (s *storeSuite) TestInsertAssignsKeyAndGetReturnsRecord() {
	u := s.insertUser("Ana", "ana@x.com")
	s.Greater(u.ID, int64(0))

	var got model.User
	s.Require().NoError(s.store.Get(s.ctx, repository.Users, u.ID, &got))
	s.Equal(u.ID, got.ID)
	s.Equal("Ana", got.Name)
	s.Equal("ana@x.com", got.Email)
	s.Equal(model.AccountActive, got.Status)
	s.Nil(got.Course)
}

func (s *storeSuite) TestGetMissingReturnsNotFound() {
	var got model.User
	err := s.store.Get(s.ctx, repository.Users, 999999, &got)
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *storeSuite) TestUniqueEmailRejected() {
	s.insertUser("Ana", "dup@x.com")

	dup := &model.User{Name: "Outra", Email: "dup@x.com", PasswordHash: "h",
		AccountType: model.AccountTypeAlumni, Status: model.AccountActive,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	_, err := s.store.Insert(s.ctx, repository.Users, dup)
	s.ErrorIs(err, repository.ErrConstraintViolation)

	var all []model.User
	s.Require().NoError(s.store.List(s.ctx, repository.Users, nil, &all))
	s.Len(all, 1)
}

func (s *storeSuite) TestCompositeUniqueMembership() {
	u1 := s.insertUser("Ana", "ana@x.com")
	u2 := s.insertUser("Bia", "bia@x.com")
	g := s.insertGroup("G", u1.ID)

	s.Require().NoError(s.insertMembership(g.ID, u1.ID))
	s.Require().NoError(s.insertMembership(g.ID, u2.ID))
	s.ErrorIs(s.insertMembership(g.ID, u1.ID), repository.ErrConstraintViolation)
}

func (s *storeSuite) TestGetByUnique() {
	u := s.insertUser("Ana", "ana@x.com")

	var got model.User
	s.Require().NoError(s.store.GetByUnique(s.ctx, repository.Users, "email", "ana@x.com", &got))
	s.Equal(u.ID, got.ID)

	err := s.store.GetByUnique(s.ctx, repository.Users, "email", "nobody@x.com", &got)
	s.ErrorIs(err, repository.ErrNotFound)

	err = s.store.GetByUnique(s.ctx, repository.Users, "nome", "Ana", &got)
	s.ErrorIs(err, repository.ErrUnknownField)
}

func (s *storeSuite) TestListByIndexInKeyOrder() {
	u1 := s.insertUser("Ana", "ana@x.com")
	u2 := s.insertUser("Bia", "bia@x.com")
	g1 := s.insertGroup("G1", u1.ID)
	g2 := s.insertGroup("G2", u1.ID)

	s.Require().NoError(s.insertMembership(g1.ID, u2.ID))
	s.Require().NoError(s.insertMembership(g2.ID, u1.ID))
	s.Require().NoError(s.insertMembership(g1.ID, u1.ID))

	var inG1 []model.Membership
	s.Require().NoError(s.store.List(s.ctx, repository.Memberships, repository.Where("grupo_id", g1.ID), &inG1))
	s.Require().Len(inG1, 2)
	s.Equal(u2.ID, inG1[0].UserID)
	s.Equal(u1.ID, inG1[1].UserID)
	s.Less(inG1[0].ID, inG1[1].ID)

	var all []model.Membership
	s.Require().NoError(s.store.List(s.ctx, repository.Memberships, nil, &all))
	s.Len(all, 3)

	var none []model.Membership
	s.Require().NoError(s.store.List(s.ctx, repository.Memberships, repository.Where("grupo_id", int64(424242)), &none))
	s.Empty(none)
}

func (s *storeSuite) TestListOnUndeclaredFieldRejected() {
	var out []model.User
	err := s.store.List(s.ctx, repository.Users, repository.Where("nome", "Ana"), &out)
	s.ErrorIs(err, repository.ErrUnknownField)
}

func (s *storeSuite) TestUpdateIsPartial() {
	u := s.insertUser("Ana", "ana@x.com")
	course := "Computação"

	s.Require().NoError(s.store.Update(s.ctx, repository.Users, u.ID, repository.Fields{
		"nome":  "Ana Maria",
		"curso": &course,
	}))

	var got model.User
	s.Require().NoError(s.store.Get(s.ctx, repository.Users, u.ID, &got))
	s.Equal("Ana Maria", got.Name)
	s.Require().NotNil(got.Course)
	s.Equal("Computação", *got.Course)
	s.Equal("ana@x.com", got.Email)
	s.Equal("hash", got.PasswordHash)
	s.Equal(u.ID, got.ID)
}

func (s *storeSuite) TestUpdateMissingReturnsNotFound() {
	err := s.store.Update(s.ctx, repository.Users, 999999, repository.Fields{"nome": "x"})
	s.ErrorIs(err, repository.ErrNotFound)

	err = s.store.Update(s.ctx, repository.Users, 999999, repository.Fields{})
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *storeSuite) TestUpdateViolatingUniqueRejected() {
	s.insertUser("Ana", "ana@x.com")
	b := s.insertUser("Bia", "bia@x.com")

	err := s.store.Update(s.ctx, repository.Users, b.ID, repository.Fields{"email": "ana@x.com"})
	s.ErrorIs(err, repository.ErrConstraintViolation)

	var got model.User
	s.Require().NoError(s.store.Get(s.ctx, repository.Users, b.ID, &got))
	s.Equal("bia@x.com", got.Email)
}

func (s *storeSuite) TestDeleteAbsentIsNoop() {
	u := s.insertUser("Ana", "ana@x.com")

	s.Require().NoError(s.store.Delete(s.ctx, repository.Users, u.ID))
	s.Require().NoError(s.store.Delete(s.ctx, repository.Users, u.ID))

	var got model.User
	s.ErrorIs(s.store.Get(s.ctx, repository.Users, u.ID, &got), repository.ErrNotFound)
}

func (s *storeSuite) TestUnknownCollectionRejected() {
	var got model.User
	err := s.store.Get(s.ctx, repository.Collection("nada"), 1, &got)
	require.ErrorIs(s.T(), err, repository.ErrUnknownCollection)
}
