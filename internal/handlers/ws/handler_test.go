package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/models"
	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	draftMocks "github.com/KirkDiggler/lightthelamp/internal/services/draft/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockLoader *draftMocks.MockService
	hub        *Hub
	server     *httptest.Server

	testLeagueID string
	testGameID   string
}

func (s *HandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLoader = draftMocks.NewMockService(s.mockCtrl)
	s.hub = NewHub(&HubConfig{Loader: s.mockLoader})

	handler, err := NewHandler(&HandlerConfig{Hub: s.hub, Loader: s.mockLoader})
	s.Require().NoError(err)

	router := chi.NewRouter()
	router.Get("/v1/leagues/{leagueID}/games/{gameID}/ws", handler.ServeDraft)
	s.server = httptest.NewServer(router)

	s.testLeagueID = "test-league-id"
	s.testGameID = "test-game-id"
}

func (s *HandlerTestSuite) TearDownTest() {
	s.server.Close()
	s.hub.Close()
	s.mockCtrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) url() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http") +
		"/v1/leagues/" + s.testLeagueID + "/games/" + s.testGameID + "/ws"
}

func (s *HandlerTestSuite) TestSnapshotThenEvents() {
	s.mockLoader.EXPECT().
		GetDraftState(gomock.Any(), &draft.GetDraftStateInput{LeagueID: s.testLeagueID, GameID: s.testGameID}).
		Return(&draft.GetDraftStateOutput{State: &models.DraftState{
			LeagueID:    s.testLeagueID,
			GameID:      s.testGameID,
			Status:      models.DraftStatusActive,
			CurrentTurn: "A",
		}}, nil)

	conn, _, err := websocket.DefaultDialer.Dial(s.url(), nil)
	s.Require().NoError(err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var snapshot Message
	s.Require().NoError(conn.ReadJSON(&snapshot))
	s.Equal(MsgSnapshot, snapshot.Type)
	s.Equal("A", snapshot.State.CurrentTurn)

	s.Require().Eventually(func() bool {
		return s.hub.Subscribers(s.testLeagueID, s.testGameID) == 1
	}, time.Second, 5*time.Millisecond)

	err = s.hub.Publish(context.Background(), &models.DraftEvent{
		ID:       "event-1",
		Type:     models.DraftEventDraftCompleted,
		LeagueID: s.testLeagueID,
		GameID:   s.testGameID,
		State: &models.DraftState{
			LeagueID: s.testLeagueID,
			GameID:   s.testGameID,
			Status:   models.DraftStatusComplete,
		},
	})
	s.Require().NoError(err)

	var update Message
	s.Require().NoError(conn.ReadJSON(&update))
	s.Equal(MessageType(models.DraftEventDraftCompleted), update.Type)
	s.True(update.State.IsComplete())
}

func (s *HandlerTestSuite) TestClientDisconnectUnsubscribes() {
	s.mockLoader.EXPECT().
		GetDraftState(gomock.Any(), gomock.Any()).
		Return(&draft.GetDraftStateOutput{State: &models.DraftState{LeagueID: s.testLeagueID, GameID: s.testGameID}}, nil)

	conn, _, err := websocket.DefaultDialer.Dial(s.url(), nil)
	s.Require().NoError(err)
	s.Require().Eventually(func() bool {
		return s.hub.Subscribers(s.testLeagueID, s.testGameID) == 1
	}, time.Second, 5*time.Millisecond)

	conn.Close()

	s.Eventually(func() bool {
		return s.hub.Subscribers(s.testLeagueID, s.testGameID) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *HandlerTestSuite) TestStateUnavailableRejectsUpgrade() {
	s.mockLoader.EXPECT().GetDraftState(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	_, resp, err := websocket.DefaultDialer.Dial(s.url(), nil)

	s.Require().Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
	s.Eventually(func() bool {
		return s.hub.Subscribers(s.testLeagueID, s.testGameID) == 0
	}, time.Second, 5*time.Millisecond)
}

func (s *HandlerTestSuite) TestPickDuringSnapshotLoadReachesClient() {
	older := &models.DraftState{LeagueID: s.testLeagueID, GameID: s.testGameID, CurrentTurn: "A"}
	newer := &models.DraftState{
		LeagueID:    s.testLeagueID,
		GameID:      s.testGameID,
		CurrentTurn: "B",
		Picks:       []*models.Pick{{ID: "pick-1", GameID: s.testGameID, ParticipantID: "A", PlayerID: "P1"}},
	}

	// A pick lands while the snapshot is being read, and the read misses it
	s.mockLoader.EXPECT().
		GetDraftState(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *draft.GetDraftStateInput) (*draft.GetDraftStateOutput, error) {
			err := s.hub.Publish(ctx, &models.DraftEvent{
				ID:       "event-1",
				Type:     models.DraftEventPickMade,
				LeagueID: s.testLeagueID,
				GameID:   s.testGameID,
				State:    newer,
			})
			s.Require().NoError(err)
			return &draft.GetDraftStateOutput{State: older}, nil
		})

	conn, _, err := websocket.DefaultDialer.Dial(s.url(), nil)
	s.Require().NoError(err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	for msg.Type != MessageType(models.DraftEventPickMade) {
		s.Require().NoError(conn.ReadJSON(&msg))
	}
	s.Equal("B", msg.State.CurrentTurn)

	// The older snapshot is never sent on top of it
	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	s.Error(conn.ReadJSON(&msg))
}

func (s *HandlerTestSuite) TestNewHandlerValidatesConfig() {
	_, err := NewHandler(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewHandler(&HandlerConfig{})
	s.ErrorIs(err, ErrNilHub)

	_, err = NewHandler(&HandlerConfig{Hub: s.hub})
	s.ErrorIs(err, ErrNilLoader)
}
