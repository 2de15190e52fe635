package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"afterschool/internal/core/domain"
)

const (
	lessonsCollection = "lessons"
	ordersCollection  = "orders"
)

// MongoAdapter backs the catalog and order repositories with two
// id-keyed collections.
type MongoAdapter struct {
	lessons *mongo.Collection
	orders  *mongo.Collection
}

func NewMongoAdapter(db *mongo.Database) *MongoAdapter {
	return &MongoAdapter{
		lessons: db.Collection(lessonsCollection),
		orders:  db.Collection(ordersCollection),
	}
}

type lessonDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Subject  string             `bson:"subject"`
	Location string             `bson:"location"`
	Price    float64            `bson:"price"`
	Space    int                `bson:"space"`
	Icon     string             `bson:"icon"`
}

func (d lessonDoc) toDomain() domain.Lesson {
	return domain.Lesson{
		ID:       d.ID.Hex(),
		Subject:  d.Subject,
		Location: d.Location,
		Price:    d.Price,
		Space:    d.Space,
		Icon:     d.Icon,
	}
}

type orderItemDoc struct {
	LessonID string `bson:"id"`
	Subject  string `bson:"subject"`
	Quantity int    `bson:"quantity"`
}

type orderDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Phone     string             `bson:"phone"`
	Lessons   []orderItemDoc     `bson:"lessons"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func lessonID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

func (m *MongoAdapter) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	cursor, err := m.lessons.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find lessons: %w", err)
	}
	var docs []lessonDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	out := make([]domain.Lesson, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (m *MongoAdapter) GetLesson(ctx context.Context, id string) (*domain.Lesson, error) {
	oid, err := lessonID(id)
	if err != nil {
		return nil, err
	}
	var doc lessonDoc
	err = m.lessons.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lesson %s: %w", id, err)
	}
	l := doc.toDomain()
	return &l, nil
}

// DecrementSpace is the check-and-take step: the filter only matches while
// the lesson still has enough seats, so two competing orders can never both
// win the last seat.
func (m *MongoAdapter) DecrementSpace(ctx context.Context, id string, quantity int) (bool, error) {
	oid, err := lessonID(id)
	if err != nil {
		return false, err
	}
	res, err := m.lessons.UpdateOne(ctx,
		bson.M{"_id": oid, "space": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"space": -quantity}},
	)
	if err != nil {
		return false, fmt.Errorf("decrement space for %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

func (m *MongoAdapter) IncrementSpace(ctx context.Context, id string, quantity int) error {
	oid, err := lessonID(id)
	if err != nil {
		return err
	}
	_, err = m.lessons.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"space": quantity}},
	)
	if err != nil {
		return fmt.Errorf("increment space for %s: %w", id, err)
	}
	return nil
}

func (m *MongoAdapter) UpdateLessonFields(ctx context.Context, id string, fields map[string]any) error {
	oid, err := lessonID(id)
	if err != nil {
		return err
	}
	res, err := m.lessons.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update lesson %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *MongoAdapter) CountLessons(ctx context.Context) (int64, error) {
	n, err := m.lessons.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return n, nil
}

func (m *MongoAdapter) InsertLessons(ctx context.Context, lessons []domain.Lesson) error {
	docs := make([]any, 0, len(lessons))
	for _, l := range lessons {
		docs = append(docs, lessonDoc{
			Subject:  l.Subject,
			Location: l.Location,
			Price:    l.Price,
			Space:    l.Space,
			Icon:     l.Icon,
		})
	}
	if _, err := m.lessons.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert lessons: %w", err)
	}
	return nil
}

// InsertLesson adds a single lesson and returns its assigned id. Used by
// tooling and tests; the service only seeds in bulk.
func (m *MongoAdapter) InsertLesson(ctx context.Context, l domain.Lesson) (string, error) {
	res, err := m.lessons.InsertOne(ctx, lessonDoc{
		Subject:  l.Subject,
		Location: l.Location,
		Price:    l.Price,
		Space:    l.Space,
		Icon:     l.Icon,
	})
	if err != nil {
		return "", fmt.Errorf("insert lesson: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (m *MongoAdapter) CreateOrder(ctx context.Context, o domain.Order) (string, error) {
	items := make([]orderItemDoc, 0, len(o.Lessons))
	for _, it := range o.Lessons {
		items = append(items, orderItemDoc{
			LessonID: it.LessonID,
			Subject:  it.Subject,
			Quantity: it.Quantity,
		})
	}
	res, err := m.orders.InsertOne(ctx, orderDoc{
		Name:      o.Name,
		Phone:     o.Phone,
		Lessons:   items,
		CreatedAt: o.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}
