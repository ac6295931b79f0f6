package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/anonto42/threadboard/backend/internal/models"
	"github.com/anonto42/threadboard/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
)

type MemberRepository struct {
	members map[uint]*models.Member
	nextID  uint
	mutex   sync.RWMutex
}

type PostingRepository struct {
	postings map[uint]*models.Posting
	links    []models.MemberPosting
	nextID   uint
	mutex    sync.RWMutex
}

// CommentRepository keeps trees as encoded BSON so callers never share memory
// with the stored copy, the same as a real document store.
type CommentRepository struct {
	docs  map[uint][]byte
	mutex sync.Mutex

	// BeforeWrite, when set, runs before every Insert or Replace. Tests use it
	// to slip in a competing writer.
	BeforeWrite func(postingID uint)
	// Err, when set, is returned by every call.
	Err error

	Loads  int
	Writes int
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{members: make(map[uint]*models.Member), nextID: 1}
}

func NewPostingRepository() *PostingRepository {
	return &PostingRepository{postings: make(map[uint]*models.Posting), nextID: 1}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{docs: make(map[uint][]byte)}
}

// MemberRepository implementation
func (m *MemberRepository) Add(member *models.Member) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	member.ID = m.nextID
	m.nextID++
	m.members[member.ID] = member
}

func (m *MemberRepository) GetMembers(ctx context.Context) ([]models.Member, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	members := []models.Member{}
	for id := uint(1); id < m.nextID; id++ {
		if member, exists := m.members[id]; exists {
			members = append(members, *member)
		}
	}
	return members, nil
}

func (m *MemberRepository) GetMemberByID(ctx context.Context, id uint) (*models.Member, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	member, exists := m.members[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

// PostingRepository implementation
func (m *PostingRepository) CreatePosting(ctx context.Context, posting *models.Posting, memberID uint) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	posting.ID = m.nextID
	m.nextID++
	stored := *posting
	m.postings[posting.ID] = &stored
	m.link(memberID, posting.ID)
	return nil
}

func (m *PostingRepository) GetPostingByID(ctx context.Context, id uint) (*models.Posting, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posting, exists := m.postings[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *posting
	return &copied, nil
}

func (m *PostingRepository) GetPostings(ctx context.Context) ([]models.Posting, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	postings := []models.Posting{}
	for id := uint(1); id < m.nextID; id++ {
		if posting, exists := m.postings[id]; exists {
			postings = append(postings, *posting)
		}
	}
	return postings, nil
}

func (m *PostingRepository) GetPostingsByMemberID(ctx context.Context, memberID uint) ([]models.Posting, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	postings := []models.Posting{}
	for _, link := range m.links {
		if link.MemberID == memberID {
			if posting, exists := m.postings[link.PostingID]; exists {
				postings = append(postings, *posting)
			}
		}
	}
	sort.Slice(postings, func(i, j int) bool { return postings[i].ID < postings[j].ID })
	return postings, nil
}

func (m *PostingRepository) LinkMember(ctx context.Context, memberID, postingID uint) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.postings[postingID]; !exists {
		return repositories.ErrNotFound
	}
	m.link(memberID, postingID)
	return nil
}

// Links returns a copy of the stored member/posting links.
func (m *PostingRepository) Links() []models.MemberPosting {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return append([]models.MemberPosting(nil), m.links...)
}

// link ignores a pair that already exists, like the ON CONFLICT DO NOTHING insert.
func (m *PostingRepository) link(memberID, postingID uint) {
	for _, l := range m.links {
		if l.MemberID == memberID && l.PostingID == postingID {
			return
		}
	}
	m.links = append(m.links, models.MemberPosting{MemberID: memberID, PostingID: postingID})
}

// CommentRepository implementation
func (m *CommentRepository) FindByPostingID(ctx context.Context, postingID uint) (*models.CommentTree, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.Loads++
	if m.Err != nil {
		return nil, false, m.Err
	}
	data, exists := m.docs[postingID]
	if !exists {
		return nil, false, nil
	}
	var tree models.CommentTree
	if err := bson.Unmarshal(data, &tree); err != nil {
		return nil, false, err
	}
	tree.Normalize()
	return &tree, true, nil
}

func (m *CommentRepository) Insert(ctx context.Context, tree *models.CommentTree) error {
	m.beforeWrite(tree.PostingID)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.docs[tree.PostingID]; exists {
		return repositories.ErrVersionConflict
	}
	tree.Normalize()
	tree.Version = 1
	return m.store(tree)
}

func (m *CommentRepository) Replace(ctx context.Context, tree *models.CommentTree) error {
	m.beforeWrite(tree.PostingID)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	data, exists := m.docs[tree.PostingID]
	if !exists {
		return repositories.ErrVersionConflict
	}
	var current models.CommentTree
	if err := bson.Unmarshal(data, &current); err != nil {
		return err
	}
	if current.Version != tree.Version {
		return repositories.ErrVersionConflict
	}
	tree.Normalize()
	tree.Version++
	return m.store(tree)
}

func (m *CommentRepository) FindAll(ctx context.Context) ([]models.CommentTree, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]uint, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	trees := []models.CommentTree{}
	for _, id := range ids {
		var tree models.CommentTree
		if err := bson.Unmarshal(m.docs[id], &tree); err != nil {
			return nil, err
		}
		tree.Normalize()
		trees = append(trees, tree)
	}
	return trees, nil
}

// Raw returns the stored bytes for a posting, or nil.
func (m *CommentRepository) Raw(postingID uint) []byte {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.docs[postingID]
}

// Put stores tree as is, bypassing version checks.
func (m *CommentRepository) Put(tree *models.CommentTree) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.store(tree)
}

func (m *CommentRepository) beforeWrite(postingID uint) {
	if m.BeforeWrite != nil {
		hook := m.BeforeWrite
		hook(postingID)
	}
}

func (m *CommentRepository) store(tree *models.CommentTree) error {
	data, err := bson.Marshal(tree)
	if err != nil {
		return err
	}
	m.Writes++
	m.docs[tree.PostingID] = data
	return nil
}
