package e2e

import (
	"encoding/json"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"livechat/domain"
	"livechat/infrastructure/ws"
	"testing"
)

type testQueueAssignmentSuite struct {
	BaseWsSuite
}

func TestQueueAssignmentSuite(t *testing.T) {
	suite.Run(t, &testQueueAssignmentSuite{})
}

func (s *testQueueAssignmentSuite) ack(frame ws.Frame, out any) {
	s.Require().Equal(ws.FrameAck, frame.Type, "unexpected error %q", frame.Error)
	if out != nil {
		s.Require().NoError(json.Unmarshal(frame.Data, out))
	}
}

func (s *testQueueAssignmentSuite) TestQueueThenAssignThenChat() {
	var firstChat, secondChat ws.CreateChatResponse

	visitor1 := s.Connect("Visitor 1 opens the site", "e2e-v1", domain.RoleVisitor)
	defer visitor1.Close()
	visitor2 := s.Connect("Visitor 2 opens the site", "e2e-v2", domain.RoleVisitor)
	defer visitor2.Close()

	// --- STEP 1: NOBODY ONLINE, CHATS WAIT IN ORDER ---
	s.Run("Step 1: Chats wait in the queue with their rank", func() {
		s.ack(visitor1.Request(ws.FrameCreateChat, ws.CreateChatRequest{
			FirstMessage: lo.ToPtr("Hi, I need help with my order"),
		}), &firstChat)
		s.Require().Equal(domain.PENDING, firstChat.Status)
		s.Require().Equal(1, firstChat.Position)
		s.Require().NotNil(firstChat.FirstMessageID)

		s.ack(visitor2.Request(ws.FrameCreateChat, ws.CreateChatRequest{}), &secondChat)
		s.Require().Equal(domain.PENDING, secondChat.Status)
		s.Require().Equal(2, secondChat.Position)
	})

	commercial1 := s.Connect("Commercial 1 logs in", "e2e-c1", domain.RoleCommercial)
	defer commercial1.Close()

	// --- STEP 2: A COMMERCIAL CONNECTS AND TAKES THE OLDEST CHAT ---
	s.Run("Step 2: Oldest chat is auto-assigned on connection", func() {
		var notice domain.ChatAssignedPayload
		commercial1.Expect(domain.ChatAssignedNotice, &notice)
		s.Require().Equal(firstChat.ChatID, notice.ChatID)
		s.Require().Equal("e2e-c1", notice.CommercialID)

		var visitorNotice domain.ChatAssignedPayload
		visitor1.Expect(domain.ChatAssignedNotice, &visitorNotice)
		s.Require().Equal(firstChat.ChatID, visitorNotice.ChatID)

		var position ws.PositionResponse
		s.ack(visitor2.Request(ws.FramePosition, ws.ChatRequest{ChatID: secondChat.ChatID}), &position)
		s.Require().Equal(1, position.Position)
	})

	// --- STEP 3: MESSAGES FLOW BOTH WAYS ---
	s.Run("Step 3: Messages reach the other participant only", func() {
		s.ack(commercial1.Request(ws.FrameSend, ws.SendMessageRequest{
			ChatID:  firstChat.ChatID,
			Content: "Hello, what is your order number?",
		}), nil)
		var received domain.ReceiveMessagePayload
		visitor1.Expect(domain.ReceiveMessage, &received)
		s.Require().Equal("e2e-c1", received.SenderID)

		s.ack(visitor1.Request(ws.FrameSend, ws.SendMessageRequest{
			ChatID:  firstChat.ChatID,
			Content: "It is 4521",
		}), nil)
		commercial1.Expect(domain.ReceiveMessage, &received)
		s.Require().Equal("It is 4521", received.Content)

		var history ws.HistoryResponse
		s.ack(visitor1.Request(ws.FrameHistory, ws.ChatRequest{ChatID: firstChat.ChatID}), &history)
		s.Require().Len(history.Messages, 3)
		s.Require().Equal("It is 4521", history.Messages[0].Content)
	})

	// --- STEP 4: A FULL COMMERCIAL CANNOT TAKE MORE, A NEW ONE CAN ---
	s.Run("Step 4: Assigned chats cannot be taken twice", func() {
		commercial2 := s.Connect("Commercial 2 logs in", "e2e-c2", domain.RoleCommercial)
		defer commercial2.Close()

		var notice domain.ChatAssignedPayload
		commercial2.Expect(domain.ChatAssignedNotice, &notice)
		s.Require().Equal(secondChat.ChatID, notice.ChatID)

		conflict := commercial2.Request(ws.FrameAssign, ws.ChatRequest{ChatID: firstChat.ChatID})
		s.Require().Equal(ws.FrameError, conflict.Type)
		s.Require().Equal("assignment_conflict", conflict.Error)
	})

	// --- STEP 5: LOGOUT ---
	s.Run("Step 5: Logout is acknowledged", func() {
		s.ack(commercial1.Request(ws.FrameLogout, struct{}{}), nil)
	})
}
