/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package licm_test

import (
	"github.com/cloudwego/licm/internal/licm"
	"github.com/cloudwego/licm/internal/ssa"
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ProcessLoop", func() {
	var (
		mockCtrl  *gomock.Controller
		forest    *MockLoopForest
		dom       *MockDominance
		inv       *MockInvariance
		speculate *MockSpeculation
		env       *licm.Env
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		forest = NewMockLoopForest(mockCtrl)
		dom = NewMockDominance(mockCtrl)
		inv = NewMockInvariance(mockCtrl)
		speculate = NewMockSpeculation(mockCtrl)
		env = &licm.Env{
			Loops:       forest,
			Dom:         dom,
			Invariance:  inv,
			Speculation: speculate,
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	invariantOnly := func(set ...*ssa.Instr) func(*ssa.Instr, *ssa.Loop) bool {
		return func(ins *ssa.Instr, _ *ssa.Loop) bool {
			for _, v := range set {
				if v == ins {
					return true
				}
			}
			return false
		}
	}

	Context("with a single counted loop", func() {
		var (
			fx *invariantLoop
			l  *ssa.Loop
		)

		BeforeEach(func() {
			fx = buildInvariantLoop()
			l = analyze(fx.fn).lf.Loops()[0]
			forest.EXPECT().LoopFor(gomock.Any()).Return(l).AnyTimes()
		})

		It("should hoist invariant instructions that can be speculated", func() {
			inv.EXPECT().IsLoopInvariant(gomock.Any(), l).DoAndReturn(invariantOnly(fx.sum)).AnyTimes()
			speculate.EXPECT().IsSafeToSpeculate(fx.sum).Return(true)

			Expect(licm.ProcessLoop(env, l)).To(BeTrue())
			Expect(fx.sum.Block).To(BeIdenticalTo(fx.pre))
			Expect(fx.pre.Ins[len(fx.pre.Ins)-1]).To(BeIdenticalTo(fx.sum))
			Expect(fx.body.Ins).NotTo(ContainElement(BeIdenticalTo(fx.sum)))
		})

		It("should not ask for safety when nothing is invariant", func() {
			before := fx.fn.String()
			inv.EXPECT().IsLoopInvariant(gomock.Any(), l).Return(false).AnyTimes()
			speculate.EXPECT().IsSafeToSpeculate(gomock.Any()).Times(0)
			dom.EXPECT().Dominates(gomock.Any(), gomock.Any()).Times(0)

			Expect(licm.ProcessLoop(env, l)).To(BeFalse())
			Expect(fx.fn.String()).To(Equal(before))
		})

		It("should keep unsafe instructions that do not dominate the exits", func() {
			inv.EXPECT().IsLoopInvariant(gomock.Any(), l).DoAndReturn(invariantOnly(fx.sum)).AnyTimes()
			speculate.EXPECT().IsSafeToSpeculate(fx.sum).Return(false)
			dom.EXPECT().Dominates(fx.body, fx.exit).Return(false)

			Expect(licm.ProcessLoop(env, l)).To(BeFalse())
			Expect(fx.sum.Block).To(BeIdenticalTo(fx.body))
		})

		It("should hoist unsafe instructions that dominate every exit", func() {
			inv.EXPECT().IsLoopInvariant(gomock.Any(), l).DoAndReturn(invariantOnly(fx.sum)).AnyTimes()
			speculate.EXPECT().IsSafeToSpeculate(fx.sum).Return(false)
			dom.EXPECT().Dominates(fx.body, fx.exit).Return(true)

			Expect(licm.ProcessLoop(env, l)).To(BeTrue())
			Expect(fx.sum.Block).To(BeIdenticalTo(fx.pre))
		})

		It("should hoist in program order and report every hoist", func() {
			var hoisted []*ssa.Instr
			env.OnHoist = func(ins *ssa.Instr, from *ssa.BasicBlock) {
				Expect(from).To(BeIdenticalTo(fx.body))
				Expect(ins.Block).To(BeIdenticalTo(fx.pre))
				hoisted = append(hoisted, ins)
			}
			inv.EXPECT().IsLoopInvariant(gomock.Any(), l).DoAndReturn(invariantOnly(fx.sum, fx.scaled)).AnyTimes()
			speculate.EXPECT().IsSafeToSpeculate(gomock.Any()).Return(true).Times(2)

			Expect(licm.ProcessLoop(env, l)).To(BeTrue())
			Expect(hoisted).To(HaveLen(2))
			Expect(hoisted[0]).To(BeIdenticalTo(fx.sum))
			Expect(hoisted[1]).To(BeIdenticalTo(fx.scaled))
			Expect(fx.pre.Ins).To(HaveLen(4))
			Expect(fx.pre.Ins[2]).To(BeIdenticalTo(fx.sum))
			Expect(fx.pre.Ins[3]).To(BeIdenticalTo(fx.scaled))
		})

		It("should keep no state between invocations", func() {
			inv.EXPECT().IsLoopInvariant(gomock.Any(), l).DoAndReturn(invariantOnly(fx.sum)).AnyTimes()
			speculate.EXPECT().IsSafeToSpeculate(fx.sum).Return(true)

			Expect(licm.ProcessLoop(env, l)).To(BeTrue())
			after := fx.fn.String()
			Expect(licm.ProcessLoop(env, l)).To(BeFalse())
			Expect(fx.fn.String()).To(Equal(after))
		})
	})

	It("should treat a loop without exits as safe", func() {
		fx := buildForeverLoop()
		l := analyze(fx.fn).lf.Loops()[0]
		Expect(l.UniqueExitBlocks()).To(BeEmpty())
		forest.EXPECT().LoopFor(fx.loop).Return(l)
		inv.EXPECT().IsLoopInvariant(gomock.Any(), l).DoAndReturn(invariantOnly(fx.quot)).AnyTimes()
		speculate.EXPECT().IsSafeToSpeculate(fx.quot).Return(false)
		dom.EXPECT().Dominates(gomock.Any(), gomock.Any()).Times(0)

		Expect(licm.ProcessLoop(env, l)).To(BeTrue())
		Expect(fx.quot.Block).To(BeIdenticalTo(fx.fn.Entry))
	})

	It("should leave the blocks of nested loops alone", func() {
		fx := buildNestedLoops()
		an := analyze(fx.fn)
		outer := an.lf.LoopFor(fx.outer)
		forest.EXPECT().LoopFor(gomock.Any()).DoAndReturn(an.lf.LoopFor).AnyTimes()
		inv.EXPECT().IsLoopInvariant(gomock.Any(), outer).DoAndReturn(func(ins *ssa.Instr, _ *ssa.Loop) bool {
			Expect(ins.Block).NotTo(BeIdenticalTo(fx.body))
			return false
		}).AnyTimes()

		Expect(licm.ProcessLoop(env, outer)).To(BeFalse())
		Expect(fx.prod.Block).To(BeIdenticalTo(fx.body))
	})

	It("should panic when the loop has no preheader", func() {
		p := ssa.CreateBuilder("nopre")
		a := p.Block()
		b := p.Block()
		h := p.Block()
		exit := p.Block()
		p.Branch(p.Param(0), a, b)
		p.At(a)
		p.Jump(h)
		p.At(b)
		p.Jump(h)
		p.At(h)
		p.Branch(p.Param(1), h, exit)
		p.At(exit)
		p.Return()
		l := analyze(p.Build()).lf.Loops()[0]

		Expect(func() { licm.ProcessLoop(env, l) }).To(PanicWith("licm: loop bb_4 has no preheader"))
	})
})
